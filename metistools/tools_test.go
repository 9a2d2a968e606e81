package metistools_test

import (
	"testing"

	"github.com/lunagic/metis/metistools"
	"gotest.tools/v3/assert"
)

type Person struct {
	Name string
	Age  int
}

var people = []Person{
	{
		Name: "Aaron",
		Age:  33,
	},
	{
		Name: "Andy",
		Age:  10,
	},
}

func TestFilter(t *testing.T) {
	assert.DeepEqual(
		t,
		[]Person{
			{
				Name: "Aaron",
				Age:  33,
			},
		},
		metistools.Filter(
			people,
			func(person Person) bool {
				return person.Age >= 18
			},
		),
	)
}

func TestMap(t *testing.T) {
	assert.DeepEqual(
		t,
		[]bool{
			true,
			false,
		},
		metistools.Map(
			people,
			func(person Person) bool {
				return person.Age >= 18
			},
		),
	)
}

func TestKeys(t *testing.T) {
	assert.DeepEqual(
		t,
		[]string{"age", "email", "name"},
		metistools.Keys(map[string]int{
			"name":  1,
			"age":   2,
			"email": 3,
		}),
	)
}
