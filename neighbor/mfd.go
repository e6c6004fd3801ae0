package neighbor

// MFDCell packs eight 4-bit weights, one per D8 direction at bit
// position 4*i, into a single 32-bit value. A weight is
// in [0,15]; the all-zero cell means "no outflow defined".
type MFDCell uint32

// Weight returns the 4-bit weight for direction i.
func (c MFDCell) Weight(i int) uint32 {
	return (uint32(c) >> (4 * uint(i))) & 0xF
}

// SetWeight returns c with direction i's weight replaced by w
// (w is masked to 4 bits: callers must pass w in [0,15]).
func (c MFDCell) SetWeight(i int, w uint32) MFDCell {
	shift := 4 * uint(i)
	mask := MFDCell(0xF << shift)
	return (c &^ mask) | MFDCell((w&0xF)<<shift)
}

// IsZero reports whether the cell has no outflow defined at all
// (nodata or a sink).
func (c MFDCell) IsZero() bool { return c == 0 }

// Sum returns the sum of all eight nibble weights.
func (c MFDCell) Sum() uint32 {
	var sum uint32
	for i := 0; i < 8; i++ {
		sum += c.Weight(i)
	}
	return sum
}

// Fraction returns the fraction of flow leaving in direction i:
// Weight(i) / Sum(). Returns 0 if the cell is all-zero.
func (c MFDCell) Fraction(i int) float64 {
	sum := c.Sum()
	if sum == 0 {
		return 0
	}
	return float64(c.Weight(i)) / float64(sum)
}

// PackProportional builds an MFDCell from raw nonnegative proportions
// (one per direction, zero where there is no outflow), scaling them so
// the nonzero nibbles sum to 15 — "round(15 * slope_i / Σslope)",
// normalised to sum 15 across nibbles. Rounding is applied per-direction (round-half-away-
// from-zero via +0.5 truncation, matching float64->int truncation
// after adding 0.5); a final adjustment nudges the largest nibble so
// the total is exactly 15 when rounding alone would miss it by a
// small amount, which keeps property 6 ("MFD weight sum") exact.
func PackProportional(weights [8]float64) MFDCell {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	var nibbles [8]uint32
	var sum uint32
	maxIdx := -1
	var maxVal float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		scaled := 15 * w / total
		n := uint32(scaled + 0.5)
		if n > 15 {
			n = 15
		}
		nibbles[i] = n
		sum += n
		if w > maxVal {
			maxVal = w
			maxIdx = i
		}
	}
	if sum != 15 && maxIdx >= 0 {
		delta := int32(15) - int32(sum)
		adjusted := int32(nibbles[maxIdx]) + delta
		if adjusted < 0 {
			adjusted = 0
		}
		if adjusted > 15 {
			adjusted = 15
		}
		nibbles[maxIdx] = uint32(adjusted)
	}

	var cell MFDCell
	for i, n := range nibbles {
		cell = cell.SetWeight(i, n)
	}
	return cell
}
