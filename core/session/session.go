// Package session runs the interactive numbered menu.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fevertracker/core/catalog"
	"fevertracker/core/export"
	"fevertracker/core/render"
	"fevertracker/core/validate"
	"fevertracker/logger"
	"fevertracker/model"
	"fevertracker/repository"
)

const menu = "What you want to do?\n" +
	"1 -> Create new track\n" +
	"2 -> Add temperature to an existing track\n" +
	"3 -> Check a track\n" +
	"4 -> Convert track to a pdf file\n" +
	"5 -> Quit\n"

// errInputClosed ends the session when input runs out.
var errInputClosed = errors.New("input closed")

// errNoTracks is reported when a track must be chosen from an empty catalog.
var errNoTracks = errors.New("no tracks found")

// Session holds the collaborators of one interactive run.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	catalog  *catalog.Catalog
	repo     repository.TrackRepository
	exporter *export.Exporter
}

// New creates a session reading answers from in and printing to out.
func New(in io.Reader, out io.Writer, c *catalog.Catalog, repo repository.TrackRepository, e *export.Exporter) *Session {
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		catalog:  c,
		repo:     repo,
		exporter: e,
	}
}

// Run shows the menu until the user quits or input is exhausted.
// Failed operations are reported and the menu is shown again.
func (s *Session) Run() error {
	for {
		choice, err := s.prompt(menu)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.createTrack()
		case "2":
			err = s.addReading()
		case "3":
			err = s.checkTrack()
		case "4":
			err = s.convertTrack()
		case "5":
			logger.Info("session finished")
			return nil
		default:
			fmt.Fprint(s.out, "Please, choose a valid option\n\n")
			continue
		}

		switch {
		case err == nil:
		case errors.Is(err, errInputClosed):
			return nil
		case errors.Is(err, errNoTracks):
			fmt.Fprint(s.out, "No tracks found\n\n")
		default:
			logger.Error("operation failed", logger.String("choice", choice), logger.ErrorField(err))
			fmt.Fprintf(s.out, "operation failed: %v\n\n", err)
		}
	}
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return s.in.Text(), nil
}

// ask prompts until parse accepts the answer. Validation errors are printed
// and the question is repeated without limit.
func ask[T any](s *Session, label string, parse func(string) (T, error)) (T, error) {
	for {
		var zero T
		line, err := s.prompt(label)
		if err != nil {
			return zero, err
		}
		v, err := parse(line)
		var verr *validate.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(s.out, verr.Message)
			continue
		}
		return v, err
	}
}

func (s *Session) askReading() (model.Reading, error) {
	var r model.Reading
	var err error
	if r.Temperature, err = ask(s, "Temperature: ", validate.Temperature); err != nil {
		return r, err
	}
	medicine, err := s.prompt("Medicine: ")
	if err != nil {
		return r, err
	}
	r.Medicine = strings.TrimSpace(medicine)
	if r.Dose, err = ask(s, "Dose: ", validate.Dose); err != nil {
		return r, err
	}
	return r, nil
}

func (s *Session) chooseTrack() (model.TrackID, error) {
	ids, err := s.catalog.Tracks()
	if err != nil {
		return model.TrackID{}, err
	}
	if len(ids) == 0 {
		return model.TrackID{}, errNoTracks
	}

	fmt.Fprint(s.out, "Tracks: \n\n")
	for i, id := range ids {
		fmt.Fprintf(s.out, "%d -> %s\n", i+1, id.Display())
	}
	index, err := ask(s, "Choose a number track: ", func(in string) (int, error) {
		return validate.Selection(in, len(ids))
	})
	if err != nil {
		return model.TrackID{}, err
	}
	return catalog.Resolve(ids, index)
}

func (s *Session) printTrack(path string) error {
	rows, err := s.repo.ReadRows(path)
	if err != nil {
		return err
	}
	if err := render.Render(s.out, rows); err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Session) createTrack() error {
	name, err := ask(s, "Patient name: ", validate.PatientName)
	if err != nil {
		return err
	}
	reading, err := s.askReading()
	if err != nil {
		return err
	}
	id, err := s.repo.CreateTrack(name, reading)
	if err != nil {
		return err
	}
	// The watcher may not have seen the new file yet.
	s.catalog.Invalidate()
	return s.printTrack(id.Path)
}

func (s *Session) addReading() error {
	id, err := s.chooseTrack()
	if err != nil {
		return err
	}
	reading, err := s.askReading()
	if err != nil {
		return err
	}
	if err := s.repo.AppendReading(id.Path, reading); err != nil {
		return err
	}
	return s.printTrack(id.Path)
}

func (s *Session) checkTrack() error {
	id, err := s.chooseTrack()
	if err != nil {
		return err
	}
	if err := s.printTrack(id.Path); err != nil {
		return err
	}
	for {
		answer, err := s.prompt("Do you want to create a pdf file?: Y/n\n")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return s.export(id)
		case "n", "no":
			return nil
		default:
			fmt.Fprint(s.out, "Please, choose a valid option\n\n")
		}
	}
}

func (s *Session) convertTrack() error {
	id, err := s.chooseTrack()
	if err != nil {
		return err
	}
	return s.export(id)
}

func (s *Session) export(id model.TrackID) error {
	readings, err := s.repo.ReadAll(id.Path)
	if err != nil {
		return err
	}
	out, err := s.exporter.Export(readings, id.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "---\nYou can find %s in the %s folder\n\n", filepath.Base(out), s.exporter.Dir)
	return nil
}
