package streamline

// Params controls streamline tracing for one road class.
//
// Dstep is the integration step length, Dtest the minimum separation a
// candidate point must keep from committed samples of the same parity, and
// Dsep the seeding separation. The constraint dstep ≪ dtest ≤ dsep must
// hold for the grid index to stay complete.
type Params struct {
	Dsep              float64 `json:"dsep" yaml:"dsep"`
	Dtest             float64 `json:"dtest" yaml:"dtest"`
	Dstep             float64 `json:"dstep" yaml:"dstep"`
	Dlookahead        float64 `json:"dlookahead" yaml:"dlookahead"`
	Dcirclejoin       float64 `json:"dcirclejoin" yaml:"dcirclejoin"`
	Joinangle         float64 `json:"joinangle" yaml:"joinangle"`
	PathIterations    int     `json:"pathIterations" yaml:"pathIterations"`
	SeedTries         int     `json:"seedTries" yaml:"seedTries"`
	SimplifyTolerance float64 `json:"simplifyTolerance" yaml:"simplifyTolerance"`
	CollideEarly      float64 `json:"collideEarly" yaml:"collideEarly"`
}

// clamped returns a copy with dtest capped at dsep.
func (p Params) clamped() Params {
	if p.Dtest > p.Dsep {
		p.Dtest = p.Dsep
	}
	return p
}
