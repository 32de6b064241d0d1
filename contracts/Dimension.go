package contracts

// Dimension is an atomic physical or financial category used as an axis
// in dimension vectors. The built-in set below is fixed at library load
// time; custom unit registration may introduce new tags.
type Dimension string

const (
	Length      Dimension = "length"
	Mass        Dimension = "mass"
	Time        Dimension = "time"
	Temperature Dimension = "temperature"
	Currency    Dimension = "currency"
	Storage     Dimension = "storage"
	Energy      Dimension = "energy"
	Power       Dimension = "power"
)

// DimensionVector maps dimensions to integer exponents. Zero exponents
// are never stored; two vectors are compatible iff they are equal.
type DimensionVector map[Dimension]int

// Add returns the vector of a dimensional multiplication.
func (v DimensionVector) Add(other DimensionVector) DimensionVector {
	result := v.clone()
	for dimension, exponent := range other {
		result[dimension] += exponent
		if result[dimension] == 0 {
			delete(result, dimension)
		}
	}
	return result
}

// Sub returns the vector of a dimensional division.
func (v DimensionVector) Sub(other DimensionVector) DimensionVector {
	result := v.clone()
	for dimension, exponent := range other {
		result[dimension] -= exponent
		if result[dimension] == 0 {
			delete(result, dimension)
		}
	}
	return result
}

// Scale returns the vector of raising to the n-th power.
func (v DimensionVector) Scale(n int) DimensionVector {
	result := DimensionVector{}
	if n == 0 {
		return result
	}
	for dimension, exponent := range v {
		if exponent*n != 0 {
			result[dimension] = exponent * n
		}
	}
	return result
}

func (v DimensionVector) Equal(other DimensionVector) bool {
	for dimension, exponent := range v {
		if exponent != 0 && other[dimension] != exponent {
			return false
		}
	}
	for dimension, exponent := range other {
		if exponent != 0 && v[dimension] != exponent {
			return false
		}
	}
	return true
}

// IsZero reports whether the vector is entirely zero, i.e. dimensionless.
func (v DimensionVector) IsZero() bool {
	for _, exponent := range v {
		if exponent != 0 {
			return false
		}
	}
	return true
}

func (v DimensionVector) clone() DimensionVector {
	result := make(DimensionVector, len(v))
	for dimension, exponent := range v {
		if exponent != 0 {
			result[dimension] = exponent
		}
	}
	return result
}
