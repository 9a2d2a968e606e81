package metis

// Operator is the closed set of comparison operators a condition may carry.
type Operator string

const (
	OpEqual              Operator = "="
	OpNotEqual           Operator = "!="
	OpGreaterThan        Operator = ">"
	OpLessThan           Operator = "<"
	OpGreaterThanOrEqual Operator = ">="
	OpLessThanOrEqual    Operator = "<="
	OpLike               Operator = "LIKE"
	OpILike              Operator = "ILIKE"
	OpNotLike            Operator = "NOT LIKE"
	OpNotILike           Operator = "NOT ILIKE"
	OpIn                 Operator = "IN"
	OpNotIn              Operator = "NOT IN"
	OpIsNull             Operator = "IS NULL"
	OpIsNotNull          Operator = "IS NOT NULL"
	OpRaw                Operator = "RAW"

	// opBetween never appears in caller-facing conditions; WhereBetween is
	// lowered through the raw-fragment path at compile time.
	opBetween Operator = "BETWEEN"
)

var knownOperators = map[Operator]struct{}{
	OpEqual:              {},
	OpNotEqual:           {},
	OpGreaterThan:        {},
	OpLessThan:           {},
	OpGreaterThanOrEqual: {},
	OpLessThanOrEqual:    {},
	OpLike:               {},
	OpILike:              {},
	OpNotLike:            {},
	OpNotILike:           {},
	OpIn:                 {},
	OpNotIn:              {},
	OpIsNull:             {},
	OpIsNotNull:          {},
	OpRaw:                {},
	opBetween:            {},
}
