package model

import (
	"sort"
	"strings"
)

type SortColumn int

const (
	SortByCPU SortColumn = iota
	SortByMem
	SortByPID
	SortByUser
	SortByName
	SortByStatus
)

type Sorter struct {
	Column     SortColumn
	Descending bool
}

func NewSorter() *Sorter {
	return &Sorter{
		Column:     SortByCPU,
		Descending: true, // Default: highest CPU first
	}
}

func (s *Sorter) Toggle(col SortColumn) {
	if s.Column == col {
		s.Descending = !s.Descending
	} else {
		s.Column = col
		s.Descending = true
	}
}

func (s *Sorter) Sort(records []ProcessRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]

		var less bool
		switch s.Column {
		case SortByCPU:
			less = a.CPUPercent < b.CPUPercent
		case SortByMem:
			less = a.MemPercent < b.MemPercent
		case SortByPID:
			less = a.Pid < b.Pid
		case SortByUser:
			less = strings.ToLower(a.User) < strings.ToLower(b.User)
		case SortByName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByStatus:
			less = a.Status < b.Status
		default:
			less = a.CPUPercent < b.CPUPercent
		}

		if s.Descending {
			return !less
		}
		return less
	})
}

func (s *Sorter) ColumnName() string {
	names := []string{"CPU", "MEM", "PID", "USER", "NAME", "STATUS"}
	return names[s.Column]
}
