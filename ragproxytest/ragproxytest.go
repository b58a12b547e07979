// Package ragproxytest generates randomized raw backend payloads for tests,
// in both shapes the backend produces: JSON-style maps and attribute-bearing
// structs.
package ragproxytest

import (
	"github.com/brianvoe/gofakeit/v6"
)

func New(seed int64) *DataGen {
	return &DataGen{
		Faker: gofakeit.New(seed),
	}
}

type DataGen struct {
	*gofakeit.Faker
}

func (g *DataGen) StoreName() string {
	return "fileSearchStores/" + g.LetterN(12)
}

func (g *DataGen) DocumentName() string {
	return g.StoreName() + "/documents/" + g.LetterN(12)
}

func (g *DataGen) OperationName() string {
	return "fileSearchStores/" + g.LetterN(12) + "/upload/operations/" + g.LetterN(12)
}
