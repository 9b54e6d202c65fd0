package clog

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// Setup installs a Handler writing to output as the global apex/log
// handler and sets the global level. output is "stdout", "stderr" or a
// file path.
func Setup(level, output string) (*Handler, error) {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %s", level)
	}

	w, err := OpenOutput(output)
	if err != nil {
		return nil, err
	}

	handler := NewHandler(w)
	log.SetHandler(handler)
	log.SetLevel(logLevel)

	return handler, nil
}

func OpenOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	path, err := homedir.Expand(output)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to expand log output %s", output)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log output %s", path)
	}

	return f, nil
}
