package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"unicel/contracts"
)

// ConversionGraph holds direct conversion edges between primitive units
// and resolves multi-hop paths with an unweighted shortest-hop search.
// Resolved paths are cached per primitive pair; a factor update
// invalidates exactly the cached paths that traverse the updated edge.
type ConversionGraph struct {
	// guards the adjacency and the path cache; edit transactions are
	// serialized by the caller, the lock only keeps lookups memoizable
	// from the read path
	mutex sync.Mutex

	adjacency   map[string][]*contracts.ConversionEdge
	pathCache   map[string]contracts.ConversionPath
	pathsByEdge map[string][]string
}

func NewConversionGraph() *ConversionGraph {
	return &ConversionGraph{
		adjacency:   map[string][]*contracts.ConversionEdge{},
		pathCache:   map[string]contracts.ConversionPath{},
		pathsByEdge: map[string][]string{},
	}
}

func (g *ConversionGraph) AddEdge(from string, to string, scale float64, offset float64) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addEdge(strings.ToLower(from), strings.ToLower(to), scale, offset)
}

func (g *ConversionGraph) UpsertEdge(from string, to string, scale float64, offset float64) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	from = strings.ToLower(from)
	to = strings.ToLower(to)

	edge := g.findEdge(from, to)
	if edge == nil {
		g.addEdge(from, to, scale, offset)
		return
	}

	edge.Scale = scale
	edge.Offset = offset
	if inverse := g.findEdge(to, from); inverse != nil {
		inverse.Scale = 1 / scale
		inverse.Offset = -offset / scale
	}

	g.invalidateEdge(from, to)
	g.invalidateEdge(to, from)
}

func (g *ConversionGraph) FindPath(from string, to string) (contracts.ConversionPath, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.findPath(strings.ToLower(from), strings.ToLower(to))
}

// Convert moves a value between compounds sharing one dimension vector.
// A single exponent-1 primitive on both sides applies the path directly,
// which is the only place an affine chain is meaningful; otherwise each
// side decomposes per dimension and the per-component path factors are
// raised to the component exponent and multiplied together.
func (g *ConversionGraph) Convert(value float64, from contracts.Compound, to contracts.Compound) (float64, error) {
	if !from.Vector().Equal(to.Vector()) {
		return 0, fmt.Errorf("%q -> %q: dimension mismatch: %w", from.String(), to.String(), contracts.NoConversionPathError)
	}
	if from.Equal(to) {
		return value, nil
	}

	if fromFactor, ok := from.Single(); ok {
		if toFactor, ok := to.Single(); ok && fromFactor.Exponent == 1 && toFactor.Exponent == 1 {
			path, err := g.FindPath(fromFactor.Unit.Symbol, toFactor.Unit.Symbol)
			if err != nil {
				return 0, err
			}
			return path.Apply(value), nil
		}
	}

	fromByDimension, err := factorsByDimension(from)
	if err != nil {
		return 0, err
	}
	toByDimension, err := factorsByDimension(to)
	if err != nil {
		return 0, err
	}

	dimensions := make([]string, 0, len(fromByDimension))
	for dimension := range fromByDimension {
		dimensions = append(dimensions, string(dimension))
	}
	// fixed multiplication order keeps recalculation bit-identical
	sort.Strings(dimensions)

	factor := 1.0
	for _, dimension := range dimensions {
		fromFactor := fromByDimension[contracts.Dimension(dimension)]
		toFactor := toByDimension[contracts.Dimension(dimension)]

		path, err := g.FindPath(fromFactor.Unit.Symbol, toFactor.Unit.Symbol)
		if err != nil {
			return 0, err
		}
		partial, linear := path.Factor()
		if !linear {
			return 0, fmt.Errorf("%s: affine step inside a compound conversion: %w", fromFactor.Unit.Symbol, contracts.NoConversionPathError)
		}
		factor *= math.Pow(partial, float64(fromFactor.Exponent))
	}

	return value * factor, nil
}

func (g *ConversionGraph) addEdge(from string, to string, scale float64, offset float64) {
	g.adjacency[from] = append(g.adjacency[from], &contracts.ConversionEdge{From: from, To: to, Scale: scale, Offset: offset})
	// inverse of y = s*x + o is x = (y - o)/s
	g.adjacency[to] = append(g.adjacency[to], &contracts.ConversionEdge{From: to, To: from, Scale: 1 / scale, Offset: -offset / scale})

	// a new edge can shorten or newly connect arbitrary pairs
	g.pathCache = map[string]contracts.ConversionPath{}
	g.pathsByEdge = map[string][]string{}
}

func (g *ConversionGraph) findEdge(from string, to string) *contracts.ConversionEdge {
	for _, edge := range g.adjacency[from] {
		if edge.To == to {
			return edge
		}
	}
	return nil
}

func (g *ConversionGraph) invalidateEdge(from string, to string) {
	edgeKey := from + "\x00" + to
	for _, cacheKey := range g.pathsByEdge[edgeKey] {
		delete(g.pathCache, cacheKey)
	}
	delete(g.pathsByEdge, edgeKey)
}

type searchStep struct {
	symbol   string
	edge     *contracts.ConversionEdge
	previous int
}

func (g *ConversionGraph) findPath(from string, to string) (contracts.ConversionPath, error) {
	if from == to {
		return contracts.ConversionPath{}, nil
	}

	cacheKey := from + "\x00" + to
	if path, ok := g.pathCache[cacheKey]; ok {
		return path, nil
	}

	queue := []searchStep{{symbol: from, previous: -1}}
	visited := map[string]bool{from: true}

	for index := 0; index < len(queue); index++ {
		for _, edge := range g.adjacency[queue[index].symbol] {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			queue = append(queue, searchStep{symbol: edge.To, edge: edge, previous: index})

			if edge.To != to {
				continue
			}

			path := reconstructPath(queue, len(queue)-1)
			g.pathCache[cacheKey] = path
			for _, step := range path {
				edgeKey := step.From + "\x00" + step.To
				g.pathsByEdge[edgeKey] = append(g.pathsByEdge[edgeKey], cacheKey)
			}
			return path, nil
		}
	}

	return nil, fmt.Errorf("%s -> %s: %w", from, to, contracts.NoConversionPathError)
}

func reconstructPath(queue []searchStep, last int) contracts.ConversionPath {
	path := contracts.ConversionPath{}
	for index := last; queue[index].edge != nil; index = queue[index].previous {
		path = append(path, queue[index].edge)
	}
	for left, right := 0, len(path)-1; left < right; left, right = left+1, right-1 {
		path[left], path[right] = path[right], path[left]
	}
	return path
}

// factorsByDimension requires every factor to be a primitive of exactly
// one base dimension and every dimension to appear once per side.
func factorsByDimension(compound contracts.Compound) (map[contracts.Dimension]contracts.UnitFactor, error) {
	result := make(map[contracts.Dimension]contracts.UnitFactor, len(compound))
	for _, factor := range compound {
		if len(factor.Unit.Vector) != 1 {
			return nil, fmt.Errorf("%s is not a primitive of a single dimension: %w", factor.Unit.Symbol, contracts.NoConversionPathError)
		}
		for dimension, exponent := range factor.Unit.Vector {
			if exponent != 1 {
				return nil, fmt.Errorf("%s is not a primitive of a single dimension: %w", factor.Unit.Symbol, contracts.NoConversionPathError)
			}
			if _, duplicate := result[dimension]; duplicate {
				return nil, fmt.Errorf("duplicate %s components: %w", dimension, contracts.NoConversionPathError)
			}
			result[dimension] = factor
		}
	}
	return result, nil
}
