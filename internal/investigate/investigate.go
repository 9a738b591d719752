// Package investigate drives GHunt over one or many email addresses and
// collects the classified results into a session.
package investigate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dkoosis/goosint/internal/classify"
	"github.com/dkoosis/goosint/internal/console"
	"github.com/dkoosis/goosint/internal/ghunt"
	"github.com/dkoosis/goosint/internal/progress"
	"github.com/dkoosis/goosint/internal/record"
	"github.com/dkoosis/goosint/internal/session"
)

// Options configures an Investigator.
type Options struct {
	Timeout     time.Duration
	ResultsDir  string
	ToolVersion string
	Progress    progress.Indicator
	Log         *zap.Logger
	Now         func() time.Time
}

// Investigator owns the session for one run.
type Investigator struct {
	runner  ghunt.Runner
	con     *console.Console
	opts    Options
	session *session.Session
}

// New creates an Investigator whose session starts now.
func New(runner ghunt.Runner, con *console.Console, opts Options) *Investigator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Progress == nil {
		opts.Progress = progress.None{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Investigator{
		runner:  runner,
		con:     con,
		opts:    opts,
		session: session.New(opts.Now(), opts.ToolVersion),
	}
}

// Session returns the session being recorded.
func (inv *Investigator) Session() *session.Session {
	return inv.session
}

// ValidEmail reports whether addr looks like an email address.
func ValidEmail(addr string) bool {
	return strings.Contains(addr, "@")
}

// Single investigates addr and saves the session.
func (inv *Investigator) Single(ctx context.Context, addr string) error {
	if _, err := inv.Email(ctx, addr); err != nil {
		return err
	}
	_, _ = inv.Save()
	return nil
}

// Email investigates addr, echoes what GHunt found and appends the record
// to the session. Per-address failures become records; the returned error
// is non-nil only when ctx is done.
func (inv *Investigator) Email(ctx context.Context, addr string) (record.Record, error) {
	inv.con.Investigating(addr)

	stop := inv.opts.Progress.Start(ctx, "Investigating "+addr)
	res, err := inv.runner.Run(ctx, addr, inv.opts.Timeout)
	stop()

	if ctx.Err() != nil {
		return record.Record{}, ctx.Err()
	}

	rec := inv.record(addr, res, err)
	inv.session.Append(rec)
	inv.opts.Log.Debug("investigation finished",
		zap.String("email", addr),
		zap.String("status", string(rec.Status)),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration),
	)
	return rec, nil
}

func (inv *Investigator) record(addr string, res ghunt.Result, err error) record.Record {
	now := inv.opts.Now()
	switch {
	case errors.Is(err, ghunt.ErrTimeout):
		inv.con.Failure("Investigation timed out")
		return record.Failure(addr, record.StatusTimeout, timeoutMessage(inv.opts.Timeout), now)
	case err != nil:
		inv.con.Failure("Error during investigation: " + err.Error())
		return record.Failure(addr, record.StatusError, err.Error(), now)
	case res.ExitCode != 0:
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			inv.con.Failure("Investigation failed with no error details")
			msg = "No error details"
		} else {
			inv.con.Failure("Investigation failed: " + msg)
		}
		return record.Failure(addr, record.StatusFailed, msg, now)
	}

	lines := classify.SkipBanner(classify.SplitLines(res.Stdout))
	if len(lines) == 0 {
		inv.con.Warn("No detailed information found for this email")
		inv.con.Blank()
		return record.NoData(addr, now)
	}
	inv.con.Results(lines)
	return classify.Classify(lines, addr, now)
}

func timeoutMessage(d time.Duration) string {
	secs := strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	return fmt.Sprintf("Investigation timed out after %s seconds", secs)
}

// Save writes the session under the results folder and prints a summary.
// The folder falls back to the working directory when it cannot be
// created. Failures are reported on the console and returned.
func (inv *Investigator) Save() (string, error) {
	dir, created, err := session.EnsureDir(inv.opts.ResultsDir)
	switch {
	case err != nil:
		inv.con.Failure("Error creating results folder: " + err.Error())
	case created:
		inv.con.Success("Created results folder: " + dir)
	}

	path := filepath.Join(dir, inv.session.FileName())
	if err := inv.session.Save(path, inv.opts.Now()); err != nil {
		inv.opts.Log.Warn("saving session failed", zap.String("path", path), zap.Error(err))
		inv.con.Failure("Error saving results: " + err.Error())
		return "", err
	}
	inv.con.Success("All results saved to: " + path)
	inv.con.Summary(inv.session.Counts())
	return path, nil
}
