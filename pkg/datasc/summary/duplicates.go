package summary

import (
	"encoding/binary"
	"math"

	"github.com/spaolacci/murmur3"
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// Row tags written ahead of each cell so that values of different types never hash alike.
const (
	tagNull byte = iota
	tagNumber
	tagTime
	tagText
)

// CountDuplicates returns the number of rows whose full tuple of values equals
// an earlier row. Nulls compare equal to nulls.
//
// Rows are bucketed by a murmur3 hash of their cells; within a bucket the
// candidates are compared cell by cell, so hash collisions never count.
func CountDuplicates(t *models.Table) int {
	n := t.NumRows()
	buckets := make(map[uint64][]int, n)
	dups := 0

	for i := 0; i < n; i++ {
		h := hashRow(t, i)
		seen := false
		for _, j := range buckets[h] {
			if rowsEqual(t, i, j) {
				seen = true
				break
			}
		}
		if seen {
			dups++
			continue
		}
		buckets[h] = append(buckets[h], i)
	}
	return dups
}

func hashRow(t *models.Table, i int) uint64 {
	h := murmur3.New64()
	var buf [9]byte
	for _, c := range t.Columns {
		if c.IsNull(i) {
			h.Write([]byte{tagNull})
			continue
		}
		switch c.Type {
		case models.TypeInt, models.TypeFloat:
			v := c.Nums[i]
			if v == 0 {
				v = 0 // fold -0 into +0
			}
			buf[0] = tagNumber
			binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v))
			h.Write(buf[:])
		case models.TypeDatetime:
			buf[0] = tagTime
			binary.LittleEndian.PutUint64(buf[1:], uint64(c.Times[i].UnixNano()))
			h.Write(buf[:])
		default:
			buf[0] = tagText
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(c.Texts[i])))
			h.Write(buf[:])
			h.Write([]byte(c.Texts[i]))
		}
	}
	return h.Sum64()
}

func rowsEqual(t *models.Table, i, j int) bool {
	for _, c := range t.Columns {
		if !c.Equal(i, j) {
			return false
		}
	}
	return true
}
