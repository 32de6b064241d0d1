package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"unicel/contracts"
)

const FormulaPrefix = "="

var ExpressionError = errors.New("expression error")

// Quantity is an intermediate evaluation value: a magnitude with the
// compound unit it is expressed in.
type Quantity struct {
	Value float64
	Unit  contracts.Compound
}

// ExpressionExecutor performs unit-aware evaluation over expression
// trees produced by the expr-lang parser. Numeric literals are
// dimensionless, identifiers are cell references and the function
// vocabulary is the closed set in MathFunctions.go.
type ExpressionExecutor struct {
	canonicalizer contracts.Canonicalizer
	library       contracts.UnitLibrary
	graph         contracts.ConversionGraph
	strictUnits   bool
}

type ExecutorOption func(*ExpressionExecutor)

// StrictUnits upgrades the incompatible-unit warning on add/subtract to
// a fatal error. The default keeps the fail-soft policy.
func StrictUnits(strict bool) ExecutorOption {
	return func(e *ExpressionExecutor) {
		e.strictUnits = strict
	}
}

func NewExpressionExecutor(
	canonicalizer contracts.Canonicalizer, library contracts.UnitLibrary,
	graph contracts.ConversionGraph, options ...ExecutorOption,
) *ExpressionExecutor {
	executor := &ExpressionExecutor{
		canonicalizer: canonicalizer,
		library:       library,
		graph:         graph,
	}
	for _, option := range options {
		option(executor)
	}
	return executor
}

func (e *ExpressionExecutor) IsFormula(expression string) bool {
	return strings.HasPrefix(expression, FormulaPrefix)
}

func (e *ExpressionExecutor) Evaluate(expression string, getter contracts.CellValuesGetter, opts contracts.EvalOptions) (*contracts.EvalResult, error) {
	if !e.IsFormula(expression) {
		return nil, fmt.Errorf("%s: %w", expression, contracts.NotAFormulaError)
	}

	tree, err := parser.Parse(strings.TrimPrefix(expression, FormulaPrefix))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expression, ExpressionError)
	}

	run := &evaluation{
		executor: e,
		opts:     opts,
		vars:     map[string]Quantity{},
	}
	if err = run.fillVars(tree.Node, getter); err != nil {
		return nil, fmt.Errorf("%s: %w", expression, err)
	}

	quantity, err := run.node(tree.Node)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expression, err)
	}

	return &contracts.EvalResult{
		Value:    quantity.Value,
		Unit:     quantity.Unit.String(),
		Warnings: run.warnings,
	}, nil
}

func (e *ExpressionExecutor) ExtractDependingOnList(expression string) ([]string, error) {
	if !e.IsFormula(expression) {
		return []string{}, nil
	}

	tree, err := parser.Parse(strings.TrimPrefix(expression, FormulaPrefix))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expression, ExpressionError)
	}

	return e.collectReferences(tree.Node), nil
}

// collectReferences lists the canonical cell ids an expression tree
// reads, deduplicated in first-seen order. Function callees are not
// references.
func (e *ExpressionExecutor) collectReferences(node ast.Node) []string {
	callees := &calleesVisitor{callees: map[*ast.IdentifierNode]bool{}}
	ast.Walk(&node, callees)

	visitor := &referencesVisitor{
		canonicalizer: e.canonicalizer,
		callees:       callees.callees,
		seen:          map[string]bool{},
		order:         []string{},
	}
	ast.Walk(&node, visitor)
	return visitor.order
}

type calleesVisitor struct {
	callees map[*ast.IdentifierNode]bool
}

func (v *calleesVisitor) Visit(node *ast.Node) {
	if callNode, ok := (*node).(*ast.CallNode); ok {
		if identifierNode, ok := callNode.Callee.(*ast.IdentifierNode); ok {
			v.callees[identifierNode] = true
		}
	}
}

type referencesVisitor struct {
	canonicalizer contracts.Canonicalizer
	callees       map[*ast.IdentifierNode]bool
	seen          map[string]bool
	order         []string
}

func (v *referencesVisitor) Visit(node *ast.Node) {
	identifierNode, ok := (*node).(*ast.IdentifierNode)
	if !ok || v.callees[identifierNode] {
		return
	}

	canonical := v.canonicalizer.Canonicalize(identifierNode.Value)
	if !v.seen[canonical] {
		v.seen[canonical] = true
		v.order = append(v.order, canonical)
	}
}

// evaluation is the state of a single Evaluate call.
type evaluation struct {
	executor *ExpressionExecutor
	opts     contracts.EvalOptions
	vars     map[string]Quantity
	warnings []contracts.Warning
}

func (run *evaluation) fillVars(node ast.Node, getter contracts.CellValuesGetter) error {
	references := run.executor.collectReferences(node)
	if len(references) == 0 {
		return nil
	}

	var cells []*contracts.Cell
	if getter != nil {
		cells = getter(references)
	} else {
		cells = make([]*contracts.Cell, len(references))
	}

	for index, reference := range references {
		cell := cells[index]
		if cell == nil {
			// an empty cell reads as a dimensionless zero
			run.vars[reference] = Quantity{}
			continue
		}
		if cell.State == contracts.CellStateFormulaError {
			return fmt.Errorf("%s: %w", reference, contracts.ReferencedCellError)
		}

		compound, err := run.executor.library.ParseCompound(cell.Unit)
		if err != nil {
			return fmt.Errorf("%s: %w", reference, err)
		}
		run.vars[reference] = Quantity{Value: cell.Value, Unit: compound}
	}

	return nil
}

func (run *evaluation) node(node ast.Node) (Quantity, error) {
	switch typed := node.(type) {
	case *ast.IntegerNode:
		return Quantity{Value: float64(typed.Value)}, nil

	case *ast.FloatNode:
		return Quantity{Value: typed.Value}, nil

	case *ast.IdentifierNode:
		return run.vars[run.executor.canonicalizer.Canonicalize(typed.Value)], nil

	case *ast.UnaryNode:
		operand, err := run.node(typed.Node)
		if err != nil {
			return Quantity{}, err
		}
		switch typed.Operator {
		case "-":
			operand.Value = -operand.Value
			return operand, nil
		case "+":
			return operand, nil
		}

	case *ast.BinaryNode:
		return run.binary(typed)

	case *ast.CallNode:
		return run.call(typed)
	}

	return Quantity{}, fmt.Errorf("unsupported expression node %T: %w", node, ExpressionError)
}

func (run *evaluation) binary(node *ast.BinaryNode) (Quantity, error) {
	left, err := run.node(node.Left)
	if err != nil {
		return Quantity{}, err
	}
	right, err := run.node(node.Right)
	if err != nil {
		return Quantity{}, err
	}

	switch node.Operator {
	case "+", "-", "%":
		return run.addSub(node.Operator, left, right)

	case "*":
		unit, err := left.Unit.Mul(right.Unit)
		if err != nil {
			return Quantity{}, err
		}
		return Quantity{Value: left.Value * right.Value, Unit: unit}, nil

	case "/":
		if right.Value == 0 {
			return Quantity{}, contracts.DivisionByZeroError
		}
		unit, err := left.Unit.Div(right.Unit)
		if err != nil {
			return Quantity{}, err
		}
		return Quantity{Value: left.Value / right.Value, Unit: unit}, nil

	case "^", "**":
		return run.power(left, right)
	}

	return Quantity{}, fmt.Errorf("unsupported operator %s: %w", node.Operator, ExpressionError)
}

// addSub converts the right operand into the left operand's unit; the
// result keeps the left unit. Incompatible dimensions still combine
// numerically with a warning and a dimensionless result unless the
// executor runs in strict mode.
func (run *evaluation) addSub(operator string, left Quantity, right Quantity) (Quantity, error) {
	if left.Unit.Vector().Equal(right.Unit.Vector()) {
		value := right.Value
		if !left.Unit.Equal(right.Unit) {
			converted, err := run.executor.graph.Convert(right.Value, right.Unit, left.Unit)
			if err != nil {
				return Quantity{}, err
			}
			value = converted
		}
		return Quantity{Value: combine(operator, left.Value, value), Unit: left.Unit}, nil
	}

	if run.executor.strictUnits {
		return Quantity{}, fmt.Errorf("%s vs %s: %w", unitText(left.Unit), unitText(right.Unit), contracts.IncompatibleUnitsError)
	}

	run.warnings = append(run.warnings, contracts.Warning{
		Kind:    contracts.WarningIncompatibleUnits,
		Message: fmt.Sprintf("%s %s %s: incompatible units, raw numeric result is dimensionless", unitText(left.Unit), operator, unitText(right.Unit)),
	})
	return Quantity{Value: combine(operator, left.Value, right.Value)}, nil
}

func (run *evaluation) power(left Quantity, right Quantity) (Quantity, error) {
	if !right.Unit.IsDimensionless() {
		return Quantity{}, contracts.InvalidExponentError
	}
	if left.Unit.IsDimensionless() {
		return Quantity{Value: math.Pow(left.Value, right.Value)}, nil
	}

	exponent := int(right.Value)
	if float64(exponent) != right.Value {
		return Quantity{}, contracts.InvalidExponentError
	}
	unit, err := left.Unit.Pow(exponent)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: math.Pow(left.Value, right.Value), Unit: unit}, nil
}

func (run *evaluation) call(node *ast.CallNode) (Quantity, error) {
	callee, ok := node.Callee.(*ast.IdentifierNode)
	if !ok {
		return Quantity{}, fmt.Errorf("unsupported callee %T: %w", node.Callee, ExpressionError)
	}
	name := strings.ToLower(callee.Value)

	// unit construction and conversion take a unit expression as a
	// string literal and are dispatched structurally
	switch name {
	case "unit":
		return run.unitCall(node)
	case "convert":
		return run.convertCall(node)
	}

	handler, ok := functionHandlers[name]
	if !ok {
		return Quantity{}, fmt.Errorf("%s: %w", name, contracts.UnknownFunctionError)
	}

	args := make([]Quantity, 0, len(node.Arguments))
	for _, argument := range node.Arguments {
		if arrayNode, ok := argument.(*ast.ArrayNode); ok {
			for _, element := range arrayNode.Nodes {
				quantity, err := run.node(element)
				if err != nil {
					return Quantity{}, err
				}
				args = append(args, quantity)
			}
			continue
		}
		quantity, err := run.node(argument)
		if err != nil {
			return Quantity{}, err
		}
		args = append(args, quantity)
	}

	return handler(run, args)
}

func (run *evaluation) unitCall(node *ast.CallNode) (Quantity, error) {
	value, compound, err := run.quantityArguments("unit", node)
	if err != nil {
		return Quantity{}, err
	}
	if !value.Unit.IsDimensionless() {
		return Quantity{}, fmt.Errorf("unit() takes a plain number: %w", ExpressionError)
	}
	return Quantity{Value: value.Value, Unit: compound}, nil
}

func (run *evaluation) convertCall(node *ast.CallNode) (Quantity, error) {
	value, target, err := run.quantityArguments("convert", node)
	if err != nil {
		return Quantity{}, err
	}
	converted, err := run.executor.graph.Convert(value.Value, value.Unit, target)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: converted, Unit: target}, nil
}

func (run *evaluation) quantityArguments(name string, node *ast.CallNode) (Quantity, contracts.Compound, error) {
	if len(node.Arguments) != 2 {
		return Quantity{}, nil, fmt.Errorf("%s() takes a value and a unit string: %w", name, ExpressionError)
	}
	stringNode, ok := node.Arguments[1].(*ast.StringNode)
	if !ok {
		return Quantity{}, nil, fmt.Errorf("%s() unit argument must be a string literal: %w", name, ExpressionError)
	}

	value, err := run.node(node.Arguments[0])
	if err != nil {
		return Quantity{}, nil, err
	}
	compound, err := run.executor.library.ParseCompound(stringNode.Value)
	if err != nil {
		return Quantity{}, nil, err
	}
	return value, compound, nil
}

func combine(operator string, left float64, right float64) float64 {
	switch operator {
	case "+":
		return left + right
	case "-":
		return left - right
	default:
		return math.Mod(left, right)
	}
}

func unitText(compound contracts.Compound) string {
	if text := compound.String(); text != "" {
		return text
	}
	return "dimensionless"
}
