package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/experiment"
)

func outcome(profile string, iteration int, scores experiment.Record) *experiment.Outcome {
	return &experiment.Outcome{
		ProfileID:          profile,
		ProfileDescription: "description of " + profile,
		Iteration:          iteration,
		Success:            scores != nil,
		Scores:             scores,
		Error:              pickError(scores),
	}
}

func pickError(scores experiment.Record) string {
	if scores == nil {
		return "connection refused"
	}
	return ""
}

func resultWith(outcomes ...*experiment.Outcome) *experiment.Result {
	return &experiment.Result{Results: outcomes}
}

func TestAggregateGroupsAndCounts(t *testing.T) {
	result := resultWith(
		outcome("a", 1, experiment.Record{"total_score": 80.0}),
		outcome("a", 2, nil),
		outcome("a", 3, experiment.Record{"total_score": 90.0}),
		outcome("b", 1, experiment.Record{"total_score": 60.0}),
	)

	aggregates := Aggregate(result)

	if len(aggregates) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggregates))
	}

	// First-seen order.
	if aggregates[0].ProfileID != "a" || aggregates[1].ProfileID != "b" {
		t.Fatalf("unexpected order: %s, %s", aggregates[0].ProfileID, aggregates[1].ProfileID)
	}

	a := aggregates[0]
	if a.TotalIterations != 3 || a.SuccessCount != 2 || a.ErrorCount != 1 {
		t.Fatalf("unexpected counts for a: %+v", a)
	}

	if a.SuccessCount+a.ErrorCount != a.TotalIterations {
		t.Fatal("success + error must equal total iterations")
	}

	stats := a.Scores["total_score"]
	if stats.Mean != 85 || stats.Min != 80 || stats.Max != 90 || stats.Median != 85 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if !reflect.DeepEqual(stats.Values, []float64{80, 90}) {
		t.Fatalf("unexpected raw values: %v", stats.Values)
	}
}

func TestAggregateSingleValueStdevIsZero(t *testing.T) {
	result := resultWith(outcome("a", 1, experiment.Record{"total_score": 80.0}))

	aggregates := Aggregate(result)
	stats := aggregates[0].Scores["total_score"]

	if stats.Stdev != 0 {
		t.Fatalf("expected stdev 0 for single value, got %v", stats.Stdev)
	}

	if math.IsNaN(stats.Stdev) {
		t.Fatal("stdev must never be NaN")
	}
}

func TestAggregateSampleStdev(t *testing.T) {
	result := resultWith(
		outcome("a", 1, experiment.Record{"total_score": 80.0}),
		outcome("a", 2, experiment.Record{"total_score": 90.0}),
	)

	stats := Aggregate(result)[0].Scores["total_score"]

	// Unbiased estimator: sqrt(((80-85)^2 + (90-85)^2) / 1).
	expected := math.Sqrt(50)
	if math.Abs(stats.Stdev-expected) > 1e-12 {
		t.Fatalf("expected stdev %v, got %v", expected, stats.Stdev)
	}
}

func TestAggregateSkipsNonNumericFieldsPerOutcome(t *testing.T) {
	result := resultWith(
		outcome("a", 1, experiment.Record{
			"total_score":      80.0,
			"match_percentage": nil,
			"comment":          "nice CV",
		}),
		outcome("a", 2, experiment.Record{
			"total_score":      82.0,
			"match_percentage": 70.0,
		}),
	)

	aggregate := Aggregate(result)[0]

	if len(aggregate.Scores["total_score"].Values) != 2 {
		t.Fatalf("total_score series incomplete: %v", aggregate.Scores["total_score"].Values)
	}

	// The null in outcome 1 is skipped; the numeric in outcome 2 counts.
	if len(aggregate.Scores["match_percentage"].Values) != 1 {
		t.Fatalf("match_percentage series: %v", aggregate.Scores["match_percentage"].Values)
	}

	if _, ok := aggregate.Scores["comment"]; ok {
		t.Fatal("non-numeric field must not produce statistics")
	}
}

func TestAggregateZeroSuccessProfile(t *testing.T) {
	result := resultWith(
		outcome("a", 1, nil),
		outcome("a", 2, nil),
	)

	aggregate := Aggregate(result)[0]

	if aggregate.TotalIterations != 2 || aggregate.SuccessCount != 0 || aggregate.ErrorCount != 2 {
		t.Fatalf("unexpected counts: %+v", aggregate)
	}

	if len(aggregate.Scores) != 0 {
		t.Fatalf("expected no score statistics, got %v", aggregate.Scores)
	}

	if _, ok := aggregate.MeanTotalScore(); ok {
		t.Fatal("zero-success profile must not report a mean total score")
	}
}

func TestAggregateIsPure(t *testing.T) {
	result := resultWith(
		outcome("a", 1, experiment.Record{"total_score": 80.0, "skills_score": 17.0}),
		outcome("a", 2, experiment.Record{"total_score": 78.0, "skills_score": 18.0}),
		outcome("b", 1, experiment.Record{"total_score": 64.0}),
	)

	first := Aggregate(result)
	second := Aggregate(result)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMedianEvenSeries(t *testing.T) {
	result := resultWith(
		outcome("a", 1, experiment.Record{"total_score": 60.0}),
		outcome("a", 2, experiment.Record{"total_score": 70.0}),
		outcome("a", 3, experiment.Record{"total_score": 90.0}),
		outcome("a", 4, experiment.Record{"total_score": 100.0}),
	)

	stats := Aggregate(result)[0].Scores["total_score"]
	if stats.Median != 80 {
		t.Fatalf("expected median 80, got %v", stats.Median)
	}
}
