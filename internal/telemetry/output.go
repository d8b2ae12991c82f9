package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sander/internal/sims/sand"

	"github.com/gocarina/gocsv"
)

// Writer appends FrameStats records as CSV, emitting the header once.
type Writer struct {
	out           io.Writer
	headerWritten bool
}

// NewWriter returns a CSV writer on out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write appends the records.
func (w *Writer) Write(records ...FrameStats) error {
	if len(records) == 0 {
		return nil
	}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing frame stats: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}

// Output manages an experiment directory holding frames.csv, runs.csv and a
// config.yaml snapshot.
type Output struct {
	dir        string
	framesFile *os.File
	runsFile   *os.File
	frames     *Writer
	runs       *Writer
}

// NewOutput creates dir and opens the CSV files. It returns nil when dir is
// empty (output disabled); all methods accept a nil receiver.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	o := &Output{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	o.framesFile = f
	o.frames = NewWriter(f)

	f, err = os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		o.framesFile.Close()
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}
	o.runsFile = f
	o.runs = NewWriter(f)
	return o, nil
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// WriteConfig saves the configuration as YAML.
func (o *Output) WriteConfig(cfg sand.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteFrame appends a per-frame record to frames.csv.
func (o *Output) WriteFrame(s FrameStats) error {
	if o == nil {
		return nil
	}
	return o.frames.Write(s)
}

// WriteRun appends a final per-run record to runs.csv.
func (o *Output) WriteRun(s FrameStats) error {
	if o == nil {
		return nil
	}
	return o.runs.Write(s)
}

// Close closes all output files. Later calls are no-ops.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	var firstErr error
	for _, f := range []**os.File{&o.framesFile, &o.runsFile} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		*f = nil
	}
	return firstErr
}
