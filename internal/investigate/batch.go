package investigate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ReadIdentifiers returns the trimmed lines of r that contain "@".
func ReadIdentifiers(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !ValidEmail(line) {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading email list: %w", err)
	}
	return ids, nil
}

// Batch investigates every address listed in path, one after another, and
// saves the session once at the end. A missing or empty list is reported
// and nothing is saved.
func (inv *Investigator) Batch(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		inv.con.Failure("Email list file not found: " + path)
		return nil
	}
	if err != nil {
		inv.con.Failure("Error reading email list: " + err.Error())
		return nil
	}
	ids, err := ReadIdentifiers(f)
	_ = f.Close()
	if err != nil {
		inv.con.Failure(err.Error())
		return nil
	}

	inv.con.BatchStart(path)
	if len(ids) == 0 {
		inv.con.Failure("No valid emails found in file")
		return nil
	}
	inv.con.BatchFound(len(ids))

	for i, addr := range ids {
		inv.con.BatchItem(i+1, len(ids), addr)
		if _, err := inv.Email(ctx, addr); err != nil {
			return err
		}
		if i < len(ids)-1 {
			inv.con.BatchNext()
		}
	}

	inv.con.Saving()
	_, _ = inv.Save()
	return nil
}
