package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

// peekSize is how much input is inspected for format detection.
const peekSize = 4096

// readEntries parses a bibliography file. The format is detected from the
// extension and content unless inputFormat names one.
func readEntries(path, inputFormat string) (entries []*hub.Entry, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing bibliography: %w", cerr)
		}
	}()

	reader := bufio.NewReaderSize(f, peekSize)

	var parser format.Parser
	if inputFormat != "" {
		parser, err = format.GetParser(inputFormat)
		if err != nil {
			return nil, err
		}
	} else {
		peek, _ := reader.Peek(peekSize)
		detected, err := format.DetectFormat(path, peek)
		if err != nil {
			return nil, err
		}
		parser, err = format.GetParser(detected.Name())
		if err != nil {
			return nil, err
		}
	}

	opts := format.NewParseOptions()
	opts.SourceName = path

	entries, err = parser.Parse(reader, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing bibliography: %w", err)
	}
	return entries, nil
}

// checkEntries logs validation issues. In strict mode errors abort the run.
func checkEntries(logger zerolog.Logger, entries []*hub.Entry, strict bool) error {
	result := hub.ValidateEntries(entries)
	for _, w := range result.Warnings {
		logger.Warn().Str("citation_key", w.CitationKey).Str("field", w.Field).Msg(w.Message)
	}
	if strict {
		return result.Error()
	}
	for _, e := range result.Errors {
		logger.Warn().Str("citation_key", e.CitationKey).Str("field", e.Field).Msg(e.Message)
	}
	return nil
}

// openOutput returns the output file, or stdout when path is empty. The
// returned close function reports errors from closing the file.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// present writes result with the named presenter.
func present(path, name string, result *hub.Result, opts *format.SerializeOptions) (err error) {
	serializer, err := format.GetSerializer(name)
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := serializer.Serialize(w, result, opts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}
	return nil
}
