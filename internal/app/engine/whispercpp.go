package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// WhisperCpp runs transcriptions through a local whisper.cpp CLI binary.
type WhisperCpp struct {
	binaryPath string
	modelPath  string
	language   string
	logger     *zap.Logger
}

// NewWhisperCpp verifies the binary and model file exist and returns the
// engine. The existence checks make this the failable part of engine
// initialization that the Loader guards.
func NewWhisperCpp(binaryPath, modelPath, language string, logger *zap.Logger) (*WhisperCpp, error) {
	if _, err := os.Stat(binaryPath); err != nil {
		return nil, fmt.Errorf("whisper binary not found at %s: %w", binaryPath, err)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("whisper model not found at %s: %w", modelPath, err)
	}
	return &WhisperCpp{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		language:   language,
		logger:     logger,
	}, nil
}

// Transcribe invokes the whisper.cpp binary on the input file and reads the
// text output it writes next to a temporary output prefix.
func (w *WhisperCpp) Transcribe(ctx context.Context, inputFilePath string) (string, error) {
	outDir, err := os.MkdirTemp("", "audioscribe-whisper-*")
	if err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	outputPrefix := filepath.Join(outDir, "result")

	args := []string{
		"-m", w.modelPath,
		"-otxt",
		"-f", inputFilePath,
		"-of", outputPrefix,
	}
	if w.language != "" {
		args = append(args, "-l", w.language)
	}

	command := exec.CommandContext(ctx, w.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	w.logger.Debug("running whisper.cpp",
		zap.String("binary", w.binaryPath),
		zap.String("args", strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("whisper.cpp execution: %w, stderr: %s", err, stderr.String())
	}

	output, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
