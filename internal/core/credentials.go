package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a blocked writer retries the credentials lock.
const lockRetryDelay = 25 * time.Millisecond

// Credential is one username,password record. Passwords are stored verbatim.
type Credential struct {
	Username string
	Password string
}

// CredentialStore reads and appends username,password lines in a flat file.
//
// Writers take an advisory lock on "<path>.lock" so that Register's
// check-then-append is atomic with respect to other processes using the same
// file. Readers do not lock; appends are line-sized and readers only ever see
// whole or missing lines.
type CredentialStore struct {
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

// NewCredentialStore returns a store backed by path. lockTimeout bounds how
// long a write waits for another process holding the lock.
func NewCredentialStore(path string, lockTimeout time.Duration) *CredentialStore {
	return &CredentialStore{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
	}
}

// Path returns the credentials file location.
func (s *CredentialStore) Path() string {
	return s.path
}

// Verify reports whether username and password match a stored line exactly.
// The scan stops at the first match. A missing file verifies nothing.
func (s *CredentialStore) Verify(username, password string) (bool, error) {
	found := false
	err := s.scan(func(c Credential) bool {
		if c.Username == username && c.Password == password {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// Exists reports whether any line carries username.
func (s *CredentialStore) Exists(username string) (bool, error) {
	found := false
	err := s.scan(func(c Credential) bool {
		if c.Username == username {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// Register appends a new account unless the username is already present,
// in which case it returns ErrUsernameTaken and writes nothing.
func (s *CredentialStore) Register(ctx context.Context, username, password string) error {
	if err := validateCredential(username, password); err != nil {
		return err
	}

	return s.withLock(ctx, func() error {
		taken, err := s.Exists(username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("register %q: %w", username, ErrUsernameTaken)
		}
		return s.appendLine(username, password)
	})
}

// SaveCredential appends the account unconditionally.
func (s *CredentialStore) SaveCredential(ctx context.Context, username, password string) error {
	if err := validateCredential(username, password); err != nil {
		return err
	}

	return s.withLock(ctx, func() error {
		return s.appendLine(username, password)
	})
}

// scan feeds each parsed line to fn until fn returns false. Lines without a
// comma carry no password field and are skipped.
func (s *CredentialStore) scan(fn func(Credential) bool) error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fileUnavailable("open", s.path, err)
	}
	defer f.Close()

	err = scanLines(f, func(_ int, line string) error {
		username, password, ok := strings.Cut(line, ",")
		if !ok {
			return nil
		}
		if !fn(Credential{Username: username, Password: password}) {
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return fileUnavailable("read", s.path, err)
	}
	return nil
}

func (s *CredentialStore) appendLine(username, password string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fileUnavailable("open", s.path, err)
	}

	if _, err := fmt.Fprintf(f, "%s,%s\n", username, password); err != nil {
		f.Close()
		return fileUnavailable("write", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fileUnavailable("write", s.path, err)
	}
	return nil
}

func (s *CredentialStore) withLock(ctx context.Context, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return fileUnavailable("lock", s.lock.Path(), err)
	}
	if !locked {
		return fileUnavailable("lock", s.lock.Path(), errors.New("lock held by another process"))
	}
	defer s.lock.Unlock()

	return fn()
}

// validateCredential rejects values that would corrupt the line format or
// not read back byte for byte. The password may contain commas because lines
// split on the first one.
func validateCredential(username, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is empty", ErrMalformedRecord)
	case strings.Contains(username, ","):
		return fmt.Errorf("%w: username %q contains a comma", ErrMalformedRecord, username)
	case strings.ContainsAny(username, "\r\n"), strings.ContainsAny(password, "\r\n"):
		return fmt.Errorf("%w: credentials contain a line break", ErrMalformedRecord)
	case !utf8.ValidString(username), !utf8.ValidString(password):
		return fmt.Errorf("%w: credentials are not valid UTF-8", ErrMalformedRecord)
	}
	return nil
}
