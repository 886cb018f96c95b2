package catalog

import (
	"io"
	"os"

	"codeberg.org/mutker/erraruga/internal/errors"
	"gopkg.in/yaml.v3"
)

// Decode reads a YAML catalog. Unknown fields are rejected.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	c := &Catalog{}
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.New().Wrap(errors.ErrDecodeCatalog, err)
	}

	return c, nil
}

// Load reads the YAML catalog at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrDecodeCatalog, err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes c as YAML.
func (c *Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return errors.New().Wrap(errors.ErrEncodeCatalog, err)
	}

	if err := enc.Close(); err != nil {
		return errors.New().Wrap(errors.ErrEncodeCatalog, err)
	}

	return nil
}
