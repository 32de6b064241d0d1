package contracts

type CellSerializer interface {
	Marshal(key string, cell *Cell) ([]byte, error)
	Unmarshal(data []byte) (key string, cell *Cell, err error)
}
