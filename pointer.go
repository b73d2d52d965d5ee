package globepins

// PointerSample is a pointer position in normalized device coordinates, each axis in [-1, 1].
type PointerSample struct {
	NDCX float64
	NDCY float64
}

// FromScreen converts a pixel position to NDC. Screen y grows downward, NDC y grows upward.
func FromScreen(x, y, width, height float64) PointerSample {
	return PointerSample{
		NDCX: x/width*2 - 1,
		NDCY: -(y/height)*2 + 1,
	}
}

// PointerCell holds the most recent pointer sample. It has one writer (the pointer handler) and
// one reader (the frame tick), both on the same goroutine, so it carries no locking.
// Samples stored between two ticks coalesce; only the last survives.
type PointerCell struct {
	sample PointerSample
	writes uint64
}

func (pc *PointerCell) Store(s PointerSample) {
	pc.sample = s
	pc.writes++
}

// Load returns the latest sample without consuming it.
func (pc *PointerCell) Load() PointerSample {
	return pc.sample
}

// Writes is the number of samples stored since the cell was created.
func (pc *PointerCell) Writes() uint64 {
	return pc.writes
}

// ToScreen is the inverse of FromScreen.
func ToScreen(s PointerSample, width, height float64) (x, y float64) {
	return (s.NDCX + 1) / 2 * width, (1 - s.NDCY) / 2 * height
}
