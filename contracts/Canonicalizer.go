package contracts

type Canonicalizer interface {
	Canonicalize(cellId string) string
}
