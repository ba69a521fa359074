//go:build !darwin

package keychain

import "errors"

var errNoSecurityCommand = errors.New("security backend only available on macOS")

// securityBackend is unavailable off macOS; NewManager falls through to keyring.
type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) {
	return nil, errNoSecurityCommand
}

func (s *securityBackend) Set(key, value string) error    { return errNoSecurityCommand }
func (s *securityBackend) Get(key string) (string, error) { return "", errNoSecurityCommand }
func (s *securityBackend) Delete(key string) error        { return errNoSecurityCommand }
