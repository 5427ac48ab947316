package derive

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gangmuk/bufferbloater/common"
)

func TestRateDefaultIntervalIsIdentity(t *testing.T) {
	success := common.Series{X: []float64{1, 2, 3}, Y: []float64{10, 0, 42}}
	rate, err := Rate(success, DefaultInterval)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rate, success) {
		t.Error("Incorrect rate: ", rate)
	}
}

func TestRateDividesElementwise(t *testing.T) {
	success := common.Series{X: []float64{1, 2}, Y: []float64{10, 3}}
	rate, err := Rate(success, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rate.Y, []float64{20, 6}) {
		t.Error("Incorrect rate: ", rate.Y)
	}
	if !reflect.DeepEqual(success.Y, []float64{10, 3}) {
		t.Error("Input modified: ", success.Y)
	}

	rate.X[0] = 7
	if success.X[0] != 1 {
		t.Error("Rate shares timestamps with its input: ", success.X)
	}
}

func TestRateRejectsBadInterval(t *testing.T) {
	for _, interval := range []float64{0, -1} {
		if _, err := Rate(common.Series{}, interval); !errors.Is(err, ErrInterval) {
			t.Error("Incorrect error for interval ", interval, ": ", err)
		}
	}
}

func TestRateEmpty(t *testing.T) {
	rate, err := Rate(common.Series{}, 2)
	if err != nil || !rate.Empty() {
		t.Error("Incorrect empty rate: ", rate, err)
	}
}

func TestCompletion(t *testing.T) {
	if got := Completion([]float64{1, 3, 5}, []float64{0.5, 0.25}); !reflect.DeepEqual(got, []float64{1.5, 3.25}) {
		t.Error("Incorrect completion: ", got)
	}
	if got := Completion(nil, []float64{1}); len(got) != 0 {
		t.Error("Incorrect completion without starts: ", got)
	}
}
