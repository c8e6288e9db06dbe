package course

// Step identifies one stage of the production pipeline.
type Step string

const (
	StepAudioConverted      Step = "audio_converted"
	StepTranscribed         Step = "transcribed"
	StepAIProcessed         Step = "ai_processed"
	StepTimestampsGenerated Step = "timestamps_generated"
	StepTTSCreated          Step = "tts_created"
	StepXMLUpdated          Step = "xml_updated"
	StepUploadedToDrive     Step = "uploaded_to_drive"
	StepGitHubPushed        Step = "github_pushed"
)

// Category names a group of files registered as a step's output.
type Category string

const (
	CategoryAudio          Category = "audio_files"
	CategoryTranscriptions Category = "transcriptions"
	CategoryProcessed      Category = "processed_files"
	CategoryTimestamps     Category = "timestamp_files"
	CategoryTTS            Category = "tts_files"
	CategoryXML            Category = "xml_files"
)

// Evidence describes the filesystem signal used to infer step completion:
// a subdirectory of the course directory plus a set of file extensions.
type Evidence struct {
	Dir        string
	Extensions []string
}

// StepInfo is one registry entry. Evidence is nil for steps whose completion
// is tracked only through an explicit flag (cloud upload, repository push).
type StepInfo struct {
	Step     Step
	Label    string
	Category Category
	Evidence *Evidence
}

// registry holds the canonical step order. Each step depends on every
// earlier one; the driver processes them strictly in this order.
var registry = []StepInfo{
	{
		Step:     StepAudioConverted,
		Label:    "Audio conversion",
		Category: CategoryAudio,
		Evidence: &Evidence{Dir: "audio", Extensions: []string{".mp3"}},
	},
	{
		Step:     StepTranscribed,
		Label:    "Transcription",
		Category: CategoryTranscriptions,
		Evidence: &Evidence{Dir: "transcriptions", Extensions: []string{".txt", ".md"}},
	},
	{
		Step:     StepAIProcessed,
		Label:    "AI processing",
		Category: CategoryProcessed,
		Evidence: &Evidence{Dir: "processed", Extensions: []string{".md"}},
	},
	{
		Step:     StepTimestampsGenerated,
		Label:    "Timestamp generation",
		Category: CategoryTimestamps,
		Evidence: &Evidence{Dir: "timestamps", Extensions: []string{".json", ".csv", ".txt"}},
	},
	{
		Step:     StepTTSCreated,
		Label:    "TTS synthesis",
		Category: CategoryTTS,
		Evidence: &Evidence{Dir: "tts", Extensions: []string{".mp3"}},
	},
	{
		Step:     StepXMLUpdated,
		Label:    "Feed generation",
		Category: CategoryXML,
		Evidence: &Evidence{Dir: "xml", Extensions: []string{".xml"}},
	},
	{
		Step:  StepUploadedToDrive,
		Label: "Cloud upload",
	},
	{
		Step:  StepGitHubPushed,
		Label: "Repository publish",
	},
}

// Steps returns every step name in canonical order.
func Steps() []Step {
	steps := make([]Step, 0, len(registry))
	for _, info := range registry {
		steps = append(steps, info.Step)
	}
	return steps
}

// Infos returns the full registry in canonical order. The returned slice is a
// copy; Evidence pointers reference shared immutable entries.
func Infos() []StepInfo {
	infos := make([]StepInfo, len(registry))
	copy(infos, registry)
	return infos
}

// Info looks up the registry entry for a step.
func Info(step Step) (StepInfo, bool) {
	for _, info := range registry {
		if info.Step == step {
			return info, true
		}
	}
	return StepInfo{}, false
}

// Valid reports whether the step is part of the registry.
func Valid(step Step) bool {
	_, ok := Info(step)
	return ok
}

// CategoryFor returns the file category a step populates. Steps without a
// local output category return false.
func CategoryFor(step Step) (Category, bool) {
	info, ok := Info(step)
	if !ok || info.Category == "" {
		return "", false
	}
	return info.Category, true
}

// Categories returns every file category in registry order.
func Categories() []Category {
	return []Category{
		CategoryAudio,
		CategoryTranscriptions,
		CategoryProcessed,
		CategoryTimestamps,
		CategoryTTS,
		CategoryXML,
	}
}

// ValidCategory reports whether the category is one of the fixed set.
func ValidCategory(category Category) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}
