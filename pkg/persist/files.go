package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// statePerm is the mode of written state files.
const statePerm = 0o644

// StatePath returns the file SaveState writes for basename and codec.
func StatePath(dir, basename string, codec Codec) string {
	return filepath.Join(dir, basename+codec.Extension())
}

// SaveState writes state to dir/basename+extension. The file is written to a
// temporary name and renamed into place, so readers never observe a partial
// file.
func SaveState(dir, basename string, codec Codec, state any) (err error) {
	path := StatePath(dir, basename, codec)

	file, err := os.CreateTemp(dir, basename+".*.tmp")
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(file.Name()))
		}
	}()

	err = codec.Encode(file, state)
	if err != nil {
		return errors.Join(fmt.Errorf("encode state: %w", err), file.Close())
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close state file: %w", err)
	}

	err = os.Chmod(file.Name(), statePerm)
	if err != nil {
		return fmt.Errorf("chmod state file: %w", err)
	}

	err = os.Rename(file.Name(), path)
	if err != nil {
		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}

// LoadState decodes dir/basename+extension into the pointer state.
func LoadState(dir, basename string, codec Codec, state any) error {
	file, err := os.Open(StatePath(dir, basename, codec))
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()

	err = codec.Decode(file, state)
	if err != nil {
		return fmt.Errorf("decode state: %w", err)
	}

	return nil
}
