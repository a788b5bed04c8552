package ids

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

// DefaultLockfile is the conventional lockfile name used when the caller
// does not specify one explicitly.
const DefaultLockfile = ".mvpe.ids.lock"

// escape applies the two-step substitution from §4.4.4 in order: '%'
// becomes '%25' first, then '.' becomes '%2E'. Applying '%' first keeps
// the escaping reversible even though escaping '.' itself introduces a new
// '%' character.
func escape(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, ".", "%2E")
	return s
}

// unescape reverses escape by undoing the substitutions in the opposite
// order they were applied: '%2E' back to '.' first, then '%25' back to
// '%'.
func unescape(s string) string {
	s = strings.ReplaceAll(s, "%2E", ".")
	s = strings.ReplaceAll(s, "%25", "%")
	return s
}

// LoadLockfile reads the lockfile at path. A missing file is equivalent to
// an empty lock at version 1, per §4.4.4.
func LoadLockfile(path string) (*Lock, error) {
	if path == "" {
		return NewLock(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewLock(), nil
		}
		return nil, errors.Wrapf(err, "reading lockfile %q", path)
	}
	return parseLockfile(data)
}

func parseLockfile(data []byte) (*Lock, error) {
	lock := NewLock()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch {
		case key == "version":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "lockfile: invalid version %q", value)
			}
			lock.Version = v

		case strings.HasPrefix(key, "tombstones.methods."):
			service := unescape(strings.TrimPrefix(key, "tombstones.methods."))
			set := lock.TombstonesForService(service)
			for _, id := range parseCSVInts(value) {
				set[id] = true
			}

		case key == "tombstones.services":
			for _, id := range parseCSVInts(value) {
				lock.TombstoneServices[id] = true
			}

		case key == "tombstones.messages":
			for _, id := range parseCSVInts(value) {
				lock.TombstoneMessages[id] = true
			}

		case strings.HasPrefix(key, "aliases.services."):
			old := unescape(strings.TrimPrefix(key, "aliases.services."))
			lock.AliasServices[old] = value

		case strings.HasPrefix(key, "aliases.messages."):
			old := unescape(strings.TrimPrefix(key, "aliases.messages."))
			lock.AliasMessages[old] = value

		case strings.HasPrefix(key, "services."):
			name := unescape(strings.TrimPrefix(key, "services."))
			id, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "lockfile: invalid service id for %q", name)
			}
			lock.Services[name] = id

		case strings.HasPrefix(key, "methods."):
			name := unescape(strings.TrimPrefix(key, "methods."))
			id, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "lockfile: invalid method id for %q", name)
			}
			lock.Methods[name] = id

		case strings.HasPrefix(key, "messages."):
			name := unescape(strings.TrimPrefix(key, "messages."))
			id, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "lockfile: invalid message id for %q", name)
			}
			lock.Messages[name] = id
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning lockfile")
	}

	return lock, nil
}

func parseCSVInts(s string) []int {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if v, err := strconv.Atoi(f); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// SaveLockfile writes lock to path in the key=value text format of
// §4.4.4. Tombstone sets are emitted as ascending-sorted CSV for stable
// diffs across runs. A blank path is a no-op, matching the source's
// save-to-null-path tolerance.
func SaveLockfile(lock *Lock, path string) error {
	if path == "" {
		return nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "version = %d\n", lock.Version)

	for _, name := range sortedKeys(lock.Services) {
		fmt.Fprintf(&buf, "services.%s = %d\n", escape(name), lock.Services[name])
	}
	for _, name := range sortedKeys(lock.Methods) {
		fmt.Fprintf(&buf, "methods.%s = %d\n", escape(name), lock.Methods[name])
	}
	for _, name := range sortedKeys(lock.Messages) {
		fmt.Fprintf(&buf, "messages.%s = %d\n", escape(name), lock.Messages[name])
	}

	if len(lock.TombstoneServices) > 0 {
		fmt.Fprintf(&buf, "tombstones.services = %s\n", csvOfSortedInts(lock.TombstoneServices))
	}
	if len(lock.TombstoneMessages) > 0 {
		fmt.Fprintf(&buf, "tombstones.messages = %s\n", csvOfSortedInts(lock.TombstoneMessages))
	}
	for _, service := range sortedStringKeysOfMapSet(lock.TombstoneMethods) {
		set := lock.TombstoneMethods[service]
		if len(set) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "tombstones.methods.%s = %s\n", escape(service), csvOfSortedInts(set))
	}

	for _, old := range sortedKeys(lock.AliasServices) {
		fmt.Fprintf(&buf, "aliases.services.%s = %s\n", escape(old), lock.AliasServices[old])
	}
	for _, old := range sortedKeys(lock.AliasMessages) {
		fmt.Fprintf(&buf, "aliases.messages.%s = %s\n", escape(old), lock.AliasMessages[old])
	}

	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrapf(err, "creating lockfile directory %q", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing lockfile %q", path)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

func sortedStringKeysOfMapSet(m map[string]map[int]bool) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

func csvOfSortedInts(set map[int]bool) string {
	ints := maps.Keys(set)
	sort.Ints(ints)
	parts := make([]string, len(ints))
	for i, v := range ints {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func dirOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
