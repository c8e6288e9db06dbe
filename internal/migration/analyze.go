package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileKind classifies a migrated file by extension.
type FileKind string

const (
	KindAudio         FileKind = "audio"
	KindTranscription FileKind = "transcription"
	KindXML           FileKind = "xml"
	KindConfig        FileKind = "config"
	KindImage         FileKind = "image"
	KindVideo         FileKind = "video"
	KindDocument      FileKind = "document"
	KindOther         FileKind = "other"
)

// Kinds returns every file kind in display order.
func Kinds() []FileKind {
	return []FileKind{
		KindAudio, KindTranscription, KindXML, KindConfig,
		KindImage, KindVideo, KindDocument, KindOther,
	}
}

var kindExtensions = map[FileKind][]string{
	KindAudio:         {".mp3", ".wav", ".m4a", ".ogg"},
	KindTranscription: {".txt", ".md"},
	KindXML:           {".xml"},
	KindConfig:        {".json", ".yaml", ".yml", ".toml"},
	KindImage:         {".jpg", ".jpeg", ".png", ".gif"},
	KindVideo:         {".mp4", ".mkv", ".avi", ".mov"},
	KindDocument:      {".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx"},
}

// KindForExt classifies a file extension.
func KindForExt(ext string) FileKind {
	ext = strings.ToLower(ext)
	for kind, extensions := range kindExtensions {
		for _, candidate := range extensions {
			if ext == candidate {
				return kind
			}
		}
	}
	return KindOther
}

// PlannedFile is one file scheduled for migration.
type PlannedFile struct {
	Path    string
	RelPath string
	Size    int64
	Kind    FileKind
}

// Plan describes a migration between two directories: every file under the
// source, classified and sized, plus the free space available at the target.
type Plan struct {
	SourceDir       string
	TargetDir       string
	Files           []PlannedFile
	Counts          map[FileKind]int
	TotalBytes      int64
	TargetFreeBytes int64
}

// Analyze walks the source tree recursively, classifies each regular file by
// extension, and records sizes. It reads only filesystem metadata and does
// not create or modify anything; the target is consulted solely for free
// space. Lock and temp files left behind by the tracker are excluded.
func Analyze(sourceDir, targetDir string) (*Plan, error) {
	sourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	targetDir, err = filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", sourceDir)
	}

	plan := &Plan{
		SourceDir: sourceDir,
		TargetDir: targetDir,
		Counts:    make(map[FileKind]int, len(Kinds())),
	}
	for _, kind := range Kinds() {
		plan.Counts[kind] = 0
	}

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if excluded(d.Name()) {
			return nil
		}
		fileInfo, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		kind := KindForExt(filepath.Ext(path))
		plan.Files = append(plan.Files, PlannedFile{
			Path:    path,
			RelPath: rel,
			Size:    fileInfo.Size(),
			Kind:    kind,
		})
		plan.Counts[kind]++
		plan.TotalBytes += fileInfo.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", sourceDir, err)
	}

	plan.TargetFreeBytes = freeBytes(targetDir)
	return plan, nil
}

func excluded(name string) bool {
	if name == ".coursecast.lock" {
		return true
	}
	return strings.Contains(name, "_state.json.tmp-")
}
