package stats

import "errors"

var ErrNoPlateAppearances = errors.New("season has no plate appearances")

// Season is a real stat line as published (batting, or batting against for
// pitchers). Optional inputs are left zero when unknown.
type Season struct {
	PA      int `json:"pa" yaml:"pa"`
	AB      int `json:"ab" yaml:"ab"`
	H       int `json:"h" yaml:"h"`
	Doubles int `json:"2b" yaml:"2b"`
	Triples int `json:"3b" yaml:"3b"`
	HR      int `json:"hr" yaml:"hr"`
	BB      int `json:"bb" yaml:"bb"`
	HBP     int `json:"hbp" yaml:"hbp"`
	SO      int `json:"so" yaml:"so"`
	SB      int `json:"sb" yaml:"sb"`
	GO      int `json:"go" yaml:"go"`
	AO      int `json:"ao" yaml:"ao"`
	// IFFB counts infield fly balls; they are part of AO.
	IFFB int `json:"iffb" yaml:"iffb"`
}

func (s Season) singles() int {
	return s.H - s.Doubles - s.Triples - s.HR
}

func (s Season) totalBases() int {
	return s.singles() + 2*s.Doubles + 3*s.Triples + 4*s.HR
}

// Per400PA scales the season to 400 plate appearances and adds the
// ratio stats the accuracy scorer compares against.
func (s Season) Per400PA() (Line, error) {
	if s.PA <= 0 {
		return nil, ErrNoPlateAppearances
	}
	f := PlateAppearances / float64(s.PA)
	ab := s.AB
	if ab <= 0 {
		ab = s.PA - s.BB - s.HBP
	}

	line := Line{
		PA:  float64(s.PA),
		SO:  float64(s.SO) * f,
		BB:  float64(s.BB+s.HBP) * f,
		B1:  float64(s.singles()) * f,
		B2:  float64(s.Doubles) * f,
		B3:  float64(s.Triples) * f,
		HR:  float64(s.HR) * f,
		SB:  float64(s.SB) * f,
		H:   float64(s.H) * f,
		AB:  float64(ab) * f,
		TB:  float64(s.totalBases()) * f,
		OBP: float64(s.H+s.BB+s.HBP) / float64(s.PA),
	}
	if ab > 0 {
		line[AVG] = float64(s.H) / float64(ab)
		line[SLG] = float64(s.totalBases()) / float64(ab)
	}
	line[OPS] = line[OBP] + line[SLG]
	if s.AO > 0 {
		line[GOAO] = float64(s.GO) / float64(s.AO)
		line[IFFB] = float64(s.IFFB) / float64(s.AO)
	}
	return line, nil
}
