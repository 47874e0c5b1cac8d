package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCompile_ComparisonOperator(t *testing.T) {
	values := url.Values{"average_cost[lt]": {"10000"}}

	filter := Compile(values)

	require.Contains(t, filter, "average_cost")
	assert.Equal(t, bson.M{"$lt": int64(10000)}, filter["average_cost"])
}

func TestCompile_AllRecognizedOperators(t *testing.T) {
	values := url.Values{
		"tuition[gt]":  {"100"},
		"weeks[gte]":   {"4"},
		"rating[lt]":   {"9"},
		"tuition[lte]": {"20000"},
	}

	filter := Compile(values)

	assert.Equal(t, bson.M{"$gt": int64(100), "$lte": int64(20000)}, filter["tuition"])
	assert.Equal(t, bson.M{"$gte": int64(4)}, filter["weeks"])
	assert.Equal(t, bson.M{"$lt": int64(9)}, filter["rating"])
}

func TestCompile_InOperatorSplitsCommaList(t *testing.T) {
	values := url.Values{"careers[in]": {"Business,UI/UX"}}

	filter := Compile(values)

	assert.Equal(t, bson.M{"$in": []interface{}{"Business", "UI/UX"}}, filter["careers"])
}

func TestCompile_RepeatedInKeyMergesAllValues(t *testing.T) {
	values := url.Values{"careers[in]": {"Business,UI/UX", "Data Science"}}

	filter := Compile(values)

	assert.Equal(t, bson.M{"$in": []interface{}{"Business", "UI/UX", "Data Science"}}, filter["careers"])
}

func TestCompile_UnrecognizedOperatorPassesThrough(t *testing.T) {
	values := url.Values{"name[regex]": {"camp"}}

	filter := Compile(values)

	// Not rewritten to a $-operator; the repository decides what to do.
	assert.Equal(t, bson.M{"regex": "camp"}, filter["name"])
}

func TestCompile_BareKeyIsEquality(t *testing.T) {
	values := url.Values{
		"housing":       {"true"},
		"minimum_skill": {"beginner"},
		"weeks":         {"6"},
	}

	filter := Compile(values)

	assert.Equal(t, true, filter["housing"])
	assert.Equal(t, "beginner", filter["minimum_skill"])
	assert.Equal(t, int64(6), filter["weeks"])
}

func TestCompile_StripsReservedKeys(t *testing.T) {
	values := url.Values{
		"select":       {"name,description"},
		"sort":         {"-created_at"},
		"page":         {"2"},
		"limit":        {"5"},
		"job_guarantee": {"true"},
	}

	filter := Compile(values)

	require.Len(t, filter, 1)
	assert.Contains(t, filter, "job_guarantee")
}

func TestCompile_DoesNotMutateInput(t *testing.T) {
	values := url.Values{
		"average_cost[lte]": {"10000"},
		"select":            {"name"},
	}

	_ = Compile(values)

	assert.Equal(t, "10000", values.Get("average_cost[lte]"))
	assert.Equal(t, "name", values.Get("select"))
	assert.Len(t, values, 2)
}

func TestCompile_RepeatedBareKeyBecomesContainment(t *testing.T) {
	values := url.Values{"careers": {"Business", "UI/UX"}}

	filter := Compile(values)

	assert.Equal(t, []interface{}{"Business", "UI/UX"}, filter["careers"])
}

func TestParse_Defaults(t *testing.T) {
	p := Parse(url.Values{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, p.Sort)
	assert.Empty(t, p.Select)
	assert.Empty(t, p.Filter)
}

func TestParse_NonNumericPageAndLimitFallBack(t *testing.T) {
	p := Parse(url.Values{"page": {"abc"}, "limit": {"-3"}})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
}

func TestParse_SortAndSelect(t *testing.T) {
	p := Parse(url.Values{
		"sort":   {"name,-created_at"},
		"select": {"name,description,tuition"},
	})

	assert.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "created_at", Value: -1},
	}, p.Sort)
	assert.Equal(t, []string{"name", "description", "tuition"}, p.Select)
}
