package cache

// Keyer derives cache keys from render inputs.
type Keyer interface {
	// BlobKey identifies a single generated blob.
	BlobKey(opts BlobKeyOpts) string
	// ArtifactKey identifies one rendered output of a slide.
	ArtifactKey(slideHash string, opts ArtifactKeyOpts) string
}

// BlobKeyOpts are the inputs that determine a blob's geometry and markup.
type BlobKeyOpts struct {
	CX, CY   float64
	RX, RY   float64
	Rotation float64
	Seed     int64
	Style    string
	Points   int
	Fill     string  // color, or "from>to" for gradients
	Opacity  float64
	Format   string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
}

// DefaultKeyer hashes its inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BlobKey returns "blob:<hash>".
func (DefaultKeyer) BlobKey(opts BlobKeyOpts) string {
	return hashKey("blob", opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(slideHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", slideHash, opts)
}
