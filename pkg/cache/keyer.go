package cache

// SolveKeyOpts holds every solver parameter that influences a result.
type SolveKeyOpts struct {
	StartNode          int     `json:"start_node"`
	NumAnts            int     `json:"ants"`
	NumIterations      int     `json:"iterations"`
	EvaporationRate    float64 `json:"rho"`
	Alpha              float64 `json:"alpha"`
	Beta               float64 `json:"beta"`
	Seed               uint64  `json:"seed"`
	SymmetricDeposit   bool    `json:"symmetric,omitempty"`
	IncludeClosingEdge bool    `json:"closing,omitempty"`
}

// ArtifactKeyOpts identifies one rendering of a solve result.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SolveKey returns the key for a solver result over the input whose
	// content hash is inputHash.
	SolveKey(inputHash string, opts SolveKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact of the solve
	// result stored under solveKey.
	ArtifactKey(solveKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolveKey implements Keyer.
func (DefaultKeyer) SolveKey(inputHash string, opts SolveKeyOpts) string {
	return hashKey("solve", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(solveKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solveKey, opts)
}
