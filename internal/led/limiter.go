package led

// RGB is a linear colour with channels in [0,1].
type RGB struct{ R, G, B float64 }

// Limiter keeps a strip inside its power envelope in two stages: a per-pixel
// white cap on R+G+B, then a global current budget with a soft knee.
type Limiter struct {
	WhiteCap float64 // sum-of-channels cap, 3 disables
	ChanMA   float64 // mA per channel at full scale
	BudgetMA float64 // 0 disables the budget stage
	Knee     float64 // fraction of budget where soft limiting starts
}

// Current estimates the draw of buf in mA.
func (l Limiter) Current(buf []RGB) float64 {
	chanMA := l.ChanMA
	if chanMA <= 0 {
		chanMA = 20
	}
	var total float64
	for _, c := range buf {
		total += (c.R + c.G + c.B) * chanMA
	}
	return total
}

func (l Limiter) Apply(buf []RGB) {
	wc := l.WhiteCap
	if wc <= 0 {
		wc = 3
	}
	for i := range buf {
		s := buf[i].R + buf[i].G + buf[i].B
		if s > wc {
			scale(buf[i:i+1], wc/s)
		}
	}

	if l.BudgetMA <= 0 {
		return
	}
	total := l.Current(buf)
	if total <= 0 {
		return
	}
	knee := l.Knee
	if knee <= 0 || knee >= 1 {
		knee = 0.9
	}
	ratio := total / l.BudgetMA
	switch {
	case ratio <= knee:
	case ratio <= 1:
		// map ratio in [knee,1] onto a scale in [1, budget/total]
		minS := l.BudgetMA / total
		t := (ratio - knee) / (1 - knee)
		scale(buf, 1-t*(1-minS))
	default:
		scale(buf, l.BudgetMA/total)
	}
}

func scale(buf []RGB, s float64) {
	if s >= 1 {
		return
	}
	for i := range buf {
		buf[i].R *= s
		buf[i].G *= s
		buf[i].B *= s
	}
}
