package inmemdb

import (
	"sync"

	"github.com/bantalo/reportcard/core/student"
)

type (
	DB struct {
		student *studentTable
		kv      *kvTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
		order []string // uids, insertion order
	}

	kvTable struct {
		sync.RWMutex
		table map[string]string
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{table: make(map[string]*student.Student)},
		kv:      &kvTable{table: make(map[string]string)},
	}
}
