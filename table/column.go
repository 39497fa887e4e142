// Package table implements the in-memory table model (§4.5): an
// ordered list of named columns sharing a row count, each column
// holding its own insertion-ordered symbol dictionary and a per-row
// code list referencing it.
package table

import (
	"github.com/qvdfile/qvd/format"
	"github.com/qvdfile/qvd/index"
	"github.com/qvdfile/qvd/internal/collision"
	"github.com/qvdfile/qvd/value"
)

// Column is one field of a Table.
type Column struct {
	Name   string
	Format format.NumberFormat
	Tags   []format.Tag

	symbols []value.Value
	dict    *collision.Tracker[value.Key]
	codes   []int
}

func newColumn(name string) *Column {
	return &Column{Name: name, dict: collision.NewTracker[value.Key]()}
}

// Symbols returns the column's distinct values in insertion order.
func (c *Column) Symbols() []value.Value {
	return c.symbols
}

// Code returns row's raw code into Symbols(), or index.NullCode when
// the cell is Null. Used by the qvd package's write path to build the
// index table directly from a column's codes.
func (c *Column) Code(row int) int {
	return c.codes[row]
}

// intern returns v's code in the column's symbol list, reusing an
// existing equal symbol or appending v as a new one (§4.5 "on set, the
// new value is interned into the column's symbol list").
func (c *Column) intern(v value.Value) int {
	if v.IsNull() {
		return index.NullCode
	}

	key := v.AsKey()
	h := v.Hash()
	if code, ok := c.dict.Lookup(h, key); ok {
		return code
	}

	code := len(c.symbols)
	c.symbols = append(c.symbols, v)
	c.dict.Insert(h, key, code)

	return code
}

func (c *Column) at(row int) value.Value {
	code := c.codes[row]
	if code == index.NullCode {
		return value.Null()
	}

	return c.symbols[code]
}

// clone returns a deep copy: its own symbols backing array, codes
// backing array, and dictionary, so mutating the clone never touches c.
func (c *Column) clone() *Column {
	cl := &Column{
		Name:    c.Name,
		Format:  c.Format,
		Tags:    append([]format.Tag(nil), c.Tags...),
		symbols: append([]value.Value(nil), c.symbols...),
		codes:   append([]int(nil), c.codes...),
		dict:    collision.NewTracker[value.Key](),
	}
	for i, s := range cl.symbols {
		cl.dict.Insert(s.Hash(), s.AsKey(), i)
	}

	return cl
}

// compact rebuilds the symbol list to hold only values codes still
// reference, remapping codes in place (Table.Compact, §4.5).
func (c *Column) compact() {
	used := make([]bool, len(c.symbols))
	for _, code := range c.codes {
		if code >= 0 {
			used[code] = true
		}
	}

	remap := make([]int, len(c.symbols))
	newSymbols := make([]value.Value, 0, len(c.symbols))
	for i, u := range used {
		if !u {
			remap[i] = index.NullCode
			continue
		}
		remap[i] = len(newSymbols)
		newSymbols = append(newSymbols, c.symbols[i])
	}

	if len(newSymbols) == len(c.symbols) {
		return
	}

	c.symbols = newSymbols
	c.dict = collision.NewTracker[value.Key]()
	for i, s := range c.symbols {
		c.dict.Insert(s.Hash(), s.AsKey(), i)
	}
	for i, code := range c.codes {
		if code >= 0 {
			c.codes[i] = remap[code]
		}
	}
}
