package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRules(t *testing.T) {
	ctx := context.Background()

	recorder := func(calls *[]string, name string, res Result) Rule {
		return func(context.Context) Result {
			*calls = append(*calls, name)
			return res
		}
	}

	tests := []struct {
		name          string
		rules         func(calls *[]string) []Rule
		expectStatus  bool
		expectMessage string
		expectCalls   []string
	}{
		{
			name:         "no rules is a success",
			rules:        func(calls *[]string) []Rule { return nil },
			expectStatus: true,
			expectCalls:  nil,
		},
		{
			name: "all rules pass",
			rules: func(calls *[]string) []Rule {
				return []Rule{
					recorder(calls, "exists", Success("")),
					recorder(calls, "unique", Success("")),
				}
			},
			expectStatus: true,
			expectCalls:  []string{"exists", "unique"},
		},
		{
			name: "first failure short-circuits",
			rules: func(calls *[]string) []Rule {
				return []Rule{
					recorder(calls, "exists", Success("")),
					recorder(calls, "unique", Failure(MsgUsernameTaken)),
					recorder(calls, "role", Failure(MsgInvalidRole)),
				}
			},
			expectStatus:  false,
			expectMessage: MsgUsernameTaken,
			expectCalls:   []string{"exists", "unique"},
		},
		{
			name: "order decides which message wins",
			rules: func(calls *[]string) []Rule {
				return []Rule{
					recorder(calls, "role", Failure(MsgInvalidRole)),
					recorder(calls, "unique", Failure(MsgUsernameTaken)),
				}
			},
			expectStatus:  false,
			expectMessage: MsgInvalidRole,
			expectCalls:   []string{"role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			res := RunRules(ctx, tt.rules(&calls)...)

			assert.Equal(t, tt.expectStatus, res.Status)
			assert.Equal(t, tt.expectMessage, res.Message)
			assert.Equal(t, tt.expectCalls, calls)
		})
	}
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	assert.True(t, Check(true, "nope")(ctx).Status)

	res := Check(false, MsgEmailImmutable)(ctx)
	assert.False(t, res.Status)
	assert.Equal(t, MsgEmailImmutable, res.Message)
}
