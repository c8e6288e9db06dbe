package tracker

import "coursecast/internal/course"

// Action pairs a machine token with a human instruction for the next piece
// of work on a course.
type Action struct {
	Token       string
	Description string
}

var stepActions = map[course.Step]Action{
	course.StepAudioConverted:      {"convert_audio", "Convert course videos to audio"},
	course.StepTranscribed:         {"transcribe", "Run transcription on registered audio files"},
	course.StepAIProcessed:         {"process_ai", "Post-process transcriptions with the language model"},
	course.StepTimestampsGenerated: {"generate_timestamps", "Extract timestamps from processed files"},
	course.StepTTSCreated:          {"create_tts", "Synthesize narration audio"},
	course.StepXMLUpdated:          {"update_xml", "Generate the podcast feed"},
	course.StepUploadedToDrive:     {"upload_drive", "Upload the course to cloud storage"},
	course.StepGitHubPushed:        {"push_github", "Publish the feed to the repository"},
}

// actionComplete is the terminal action for a fully processed course.
var actionComplete = Action{"complete", "Course fully processed"}

// SuggestNextAction derives the next actionable instruction from the first
// pending step, or the terminal action when the course is complete.
func (t *Tracker) SuggestNextAction() Action {
	step, ok := t.state.NextPendingStep()
	if !ok {
		return actionComplete
	}
	return stepActions[step]
}
