package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/edusync/coursemap/internal/classifier"
	"github.com/edusync/coursemap/internal/engine"
)

// newClassifier builds a classifier from the active settings snapshot.
func newClassifier() *classifier.Classifier {
	return classifier.New(classifier.Config{
		Settings: viper.GetViper(),
	})
}

// newProcessor builds a schema processor from the active settings snapshot.
func newProcessor() *engine.Processor {
	return engine.New(engine.Config{
		Settings: viper.GetViper(),
	})
}

// collectNames merges names given as arguments with names read from an
// optional file (one per line, blank lines and #-comments skipped).
func collectNames(args []string, file string) ([]string, error) {
	names := make([]string, 0, len(args))
	names = append(names, args...)

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open names file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			names = append(names, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read names file: %w", err)
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no group names given; pass names as arguments or via --file")
	}
	return names, nil
}
