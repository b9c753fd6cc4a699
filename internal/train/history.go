package train

// EpochStats summarizes one pass over the training data.
type EpochStats struct {
	Epoch    int     // 1-based epoch number
	Loss     float64 // Mean per-sample loss, measured before each sample's update
	GradNorm float64 // Mean per-sample gradient norm
}

// History records the statistics of every epoch of a run.
type History struct {
	Epochs []EpochStats
}

// Losses returns the per-epoch mean losses in order.
func (h *History) Losses() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		out[i] = e.Loss
	}
	return out
}

// Final returns the statistics of the last epoch, or the zero value if no
// epoch ran.
func (h *History) Final() EpochStats {
	if len(h.Epochs) == 0 {
		return EpochStats{}
	}
	return h.Epochs[len(h.Epochs)-1]
}
