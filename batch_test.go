package oxide_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/zephyrtronium/oxide"
)

func TestEvaluateMany(t *testing.T) {
	cases := []struct {
		name string
		srcs []string
		opts []oxide.Option
		r    []string
	}{
		{"empty", nil, nil, []string{}},
		{"pair", []string{"add(1,1)", "add(2,2)"}, nil, []string{"2", "4"}},
		{"precision", []string{"add(1,0.5)", "div(2,3)"}, []oxide.Option{oxide.Precision(1)}, []string{"1.5", "0.7"}},
		{"one-worker", []string{"sub(3,1)", "mult(2,2.5)", "pow(5,2)"}, []oxide.Option{oxide.Workers(1)}, []string{"2", "5.0", "25"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := oxide.EvaluateMany(context.Background(), c.srcs, c.opts...)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.srcs, err)
			}
			if !reflect.DeepEqual(r, c.r) {
				t.Errorf("wrong results: want %q, got %q", c.r, r)
			}
		})
	}
}

func TestEvaluateManyOrder(t *testing.T) {
	srcs := make([]string, 500)
	want := make([]string, len(srcs))
	for i := range srcs {
		srcs[i] = "add(" + strconv.Itoa(i) + ",1)"
		want[i] = strconv.Itoa(i + 1)
	}
	for _, w := range []int{1, 2, 7, 64} {
		t.Run(strconv.Itoa(w), func(t *testing.T) {
			r, err := oxide.EvaluateMany(context.Background(), srcs, oxide.Workers(w))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(r, want) {
				t.Errorf("results out of order")
			}
		})
	}
}

func TestEvaluateManyError(t *testing.T) {
	srcs := make([]string, 200)
	for i := range srcs {
		srcs[i] = "add(1,1)"
	}
	srcs[150] = "bar(1)"
	srcs[40] = "foo(1)"
	srcs[199] = "div(1,0)"
	for _, w := range []int{1, 3, 50} {
		t.Run(strconv.Itoa(w), func(t *testing.T) {
			r, err := oxide.EvaluateMany(context.Background(), srcs, oxide.Workers(w))
			if r != nil {
				t.Errorf("partial results %q", r)
			}
			var u *oxide.UnmatchedTokenError
			if !errors.As(err, &u) {
				t.Fatalf("error %#v is not UnmatchedTokenError", err)
			}
			if u.Token != "foo" {
				t.Errorf("error is from %q, not the first failure", u.Token)
			}
		})
	}
}

func TestEvaluateManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := oxide.EvaluateMany(ctx, []string{"add(1,1)", "add(2,2)"})
	if r != nil {
		t.Errorf("results from cancelled batch: %q", r)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("wrong error %v", err)
	}
}

func TestEvaluateEach(t *testing.T) {
	srcs := []string{"add(1,1)", "foo(1)", "div(1,0)", "add(2,2)", ""}
	r := oxide.EvaluateEach(context.Background(), srcs, oxide.Workers(2))
	if len(r) != len(srcs) {
		t.Fatalf("wrong number of results: want %d, got %d", len(srcs), len(r))
	}
	if r[0].Value != "2" || r[0].Err != nil {
		t.Errorf("wrong first result %+v", r[0])
	}
	if u := new(oxide.UnmatchedTokenError); !errors.As(r[1].Err, &u) || u.Token != "foo" {
		t.Errorf("wrong second result %+v", r[1])
	}
	if v := new(oxide.InvalidStringError); !errors.As(r[2].Err, &v) || v.Token != "div" {
		t.Errorf("wrong third result %+v", r[2])
	}
	if r[3].Value != "4" || r[3].Err != nil {
		t.Errorf("wrong fourth result %+v", r[3])
	}
	if !errors.Is(r[4].Err, oxide.ErrNoResult) {
		t.Errorf("wrong fifth result %+v", r[4])
	}
	for i, x := range r {
		if x.Err != nil && x.Value != "" {
			t.Errorf("result %d has both value %q and error %v", i, x.Value, x.Err)
		}
	}
}

func TestEvaluateEachCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := oxide.EvaluateEach(ctx, []string{"add(1,1)", "add(2,2)"})
	for i, x := range r {
		if !errors.Is(x.Err, context.Canceled) {
			t.Errorf("result %d of cancelled batch: %+v", i, x)
		}
	}
}

func ExampleEvaluateMany() {
	r, err := oxide.EvaluateMany(context.Background(), []string{"add(1,1)", "add(2,2)"})
	fmt.Println(r, err)
	r, err = oxide.EvaluateMany(context.Background(), []string{"add(1,1)", "add(2)"})
	fmt.Println(r, err)

	// Output:
	// [2 4] <nil>
	// [] incorrect number of values were passed for operation: add
}
