package probe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/probegate/internal/domain"
)

func multiTargets() map[string]domain.TargetConfig {
	return map[string]domain.TargetConfig{
		domain.TargetAPI: apiTarget(),
		domain.TargetWeb: webTarget(),
	}
}

func multiPolicies() map[string]domain.ClassifierConfig {
	strict := domain.DefaultClassifierConfig()
	permissive := domain.DefaultClassifierConfig()
	permissive.Permissive = true
	return map[string]domain.ClassifierConfig{
		domain.TargetAPI: strict,
		domain.TargetWeb: permissive,
	}
}

func TestMultiAllTargetsAccept(t *testing.T) {
	client := &fakeClient{responses: map[string]canned{
		apiTarget().URL: {status: 401, body: authErrorBody},
		webTarget().URL: {status: 200, body: "app"},
	}}
	m := NewMulti(client, multiTargets(), multiPolicies(), nil)

	result := m.Probe(context.Background(), &fakeConn{}, time.Second)

	assert.True(t, result.OK)
	assert.True(t, result.Conclusive)
	require.Len(t, result.Targets, 2)
	assert.True(t, result.Targets[domain.TargetAPI].OK)
	assert.True(t, result.Targets[domain.TargetWeb].OK)
}

func TestMultiPerTargetVerdicts(t *testing.T) {
	client := &fakeClient{responses: map[string]canned{
		apiTarget().URL: {status: 403, body: "blocked"},
		webTarget().URL: {status: 200, body: "app"},
	}}
	m := NewMulti(client, multiTargets(), multiPolicies(), nil)

	result := m.Probe(context.Background(), &fakeConn{}, time.Second)

	assert.False(t, result.OK, "aggregate requires every target to accept")
	assert.True(t, result.Conclusive, "both targets produced signals")
	assert.False(t, result.Targets[domain.TargetAPI].OK)
	assert.True(t, result.Targets[domain.TargetWeb].OK)
}

func TestMultiTransportFailureMakesRoundInconclusive(t *testing.T) {
	client := &fakeClient{responses: map[string]canned{
		apiTarget().URL: {status: 401, body: authErrorBody},
		webTarget().URL: {err: fmt.Errorf("%w: timeout", domain.ErrTimeout)},
	}}
	m := NewMulti(client, multiTargets(), multiPolicies(), nil)

	result := m.Probe(context.Background(), &fakeConn{}, time.Second)

	assert.False(t, result.Conclusive, "one missing signal poisons cache-worthiness")
	assert.True(t, result.Targets[domain.TargetAPI].OK, "the target that answered keeps its verdict")
	assert.Nil(t, result.Targets[domain.TargetWeb].Signal)
}
