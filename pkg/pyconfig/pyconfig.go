// Package pyconfig rewrites top-level assignments in a Python-style
// configuration file. It is a textual transform: the file is never
// evaluated.
package pyconfig

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

var ErrConfigNotFound = errors.New("config file not found")

// Assignment is a single `Name = Value` line.
type Assignment struct {
	Name  string
	Value string
}

// Int builds an assignment with an integer literal value.
func Int(name string, value int) Assignment {
	return Assignment{Name: name, Value: strconv.Itoa(value)}
}

func (assignment Assignment) String() string {
	return assignment.Name + " = " + assignment.Value
}

func (assignment Assignment) matches(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), assignment.Name+" =")
}

// PatchLines removes every line whose trimmed content starts with
// `<name> =` for any of the assignments, then inserts the assignments, in
// argument order, after the first remaining line. If no lines remain they
// become the whole file. The input slice is not modified.
func PatchLines(lines []string, assignments ...Assignment) []string {
	kept := make([]string, 0, len(lines)+len(assignments))
	for _, line := range lines {
		drop := false
		for _, assignment := range assignments {
			if assignment.matches(line) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, line)
		}
	}

	at := 1
	if len(kept) == 0 {
		at = 0
	}
	patched := make([]string, 0, len(kept)+len(assignments))
	patched = append(patched, kept[:at]...)
	for _, assignment := range assignments {
		patched = append(patched, assignment.String())
	}
	return append(patched, kept[at:]...)
}

// Patch applies PatchLines to the file at path, keeping its permissions.
// Returns ErrConfigNotFound if the file does not exist.
func Patch(path string, assignments ...Assignment) error {
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrConfigNotFound
	} else if err != nil {
		return err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(contents), "\n")
	patched := PatchLines(lines, assignments...)
	return os.WriteFile(path, []byte(strings.Join(patched, "\n")),
		stat.Mode().Perm())
}
