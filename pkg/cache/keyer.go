package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies rendered output for an input hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
	// ShareKey identifies a worksheet stored by the HTTP server.
	ShareKey(id string) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	AutoPrint   bool   `json:"auto_print,omitempty"`
	PrintButton string `json:"print_button,omitempty"`
	Paper       string `json:"paper,omitempty"`
	Version     string `json:"version,omitempty"` // build that rendered the bytes
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the input hash and options.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// ShareKey returns "share:<id>".
func (DefaultKeyer) ShareKey(id string) string {
	return "share:" + id
}

var _ Keyer = DefaultKeyer{}
