package engine

// LayerMask selects objects by their Layer index (0..31).
type LayerMask uint32

const (
	NothingMask    LayerMask = 0
	EverythingMask LayerMask = ^LayerMask(0)
)

func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l >= 0 && l < 32 {
			m |= 1 << uint(l)
		}
	}
	return m
}

func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer >= 32 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

func (m LayerMask) IsEmpty() bool {
	return m == NothingMask
}
