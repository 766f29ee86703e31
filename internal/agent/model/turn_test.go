package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartKind(t *testing.T) {
	assert.Equal(t, PartText, TextPart("hi").Kind())
	assert.Equal(t, PartFunctionCall, FunctionCallPart(FunctionCall{Name: "addToCart"}).Kind())
	assert.Equal(t, PartFunctionResponse, FunctionResponsePart(FunctionResponse{Name: "addToCart"}).Kind())
}

func TestTurnValidate(t *testing.T) {
	call := FunctionCallPart(FunctionCall{ID: "c1", Name: "addToCart"})
	resp := FunctionResponse{ID: "c1", Name: "addToCart", Response: map[string]any{"success": true}}

	assert.NoError(t, UserTurn("hello").Validate())
	assert.NoError(t, ModelTurn(TextPart("ok"), call).Validate())
	assert.NoError(t, ToolResultTurn(resp).Validate())

	assert.ErrorIs(t, Turn{Role: RoleUser}.Validate(), ErrInvalidTurn)
	assert.ErrorIs(t, Turn{Role: RoleUser, Parts: []Part{call}}.Validate(), ErrInvalidTurn)
	assert.ErrorIs(t, Turn{Role: RoleFunction, Parts: []Part{TextPart("x")}}.Validate(), ErrInvalidTurn)
	assert.ErrorIs(t, Turn{Role: "system", Parts: []Part{TextPart("x")}}.Validate(), ErrInvalidTurn)
}

func TestValidateHistory(t *testing.T) {
	call := FunctionCall{ID: "c1", Name: "addToCart"}
	resp := FunctionResponse{ID: "c1", Name: "addToCart", Response: map[string]any{}}

	good := []Turn{UserTurn("two khawsa"), ModelTurn(FunctionCallPart(call)), ToolResultTurn(resp), ModelTurn(TextPart("done"))}
	assert.NoError(t, ValidateHistory(good))

	orphan := []Turn{UserTurn("hi"), ToolResultTurn(resp)}
	assert.ErrorIs(t, ValidateHistory(orphan), ErrInvalidTurn)

	wrongID := []Turn{UserTurn("hi"), ModelTurn(FunctionCallPart(call)), ToolResultTurn(FunctionResponse{ID: "c2", Name: "addToCart"})}
	assert.ErrorIs(t, ValidateHistory(wrongID), ErrInvalidTurn)

	answeredTwice := []Turn{UserTurn("hi"), ModelTurn(FunctionCallPart(call)), ToolResultTurn(resp, resp)}
	assert.ErrorIs(t, ValidateHistory(answeredTwice), ErrInvalidTurn)
}

func TestTurnJSONUsesGeminiShape(t *testing.T) {
	turn := ModelTurn(TextPart("Sure"), FunctionCallPart(FunctionCall{
		ID:   "c1",
		Name: "addToCart",
		Args: map[string]any{"items": []any{map[string]any{"itemName": "Khawsa", "quantity": float64(2)}}},
	}))

	b, err := json.Marshal(turn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"model","parts":[{"text":"Sure"},{"functionCall":{"id":"c1","name":"addToCart","args":{"items":[{"itemName":"Khawsa","quantity":2}]}}}]}`, string(b))

	var back Turn
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, turn, back)
}

func TestTurnAccessors(t *testing.T) {
	turn := ModelTurn(TextPart("a"), FunctionCallPart(FunctionCall{ID: "1", Name: "x"}), TextPart("b"))
	assert.Equal(t, "ab", turn.Text())
	require.Len(t, turn.FunctionCalls(), 1)
	assert.Equal(t, "x", turn.FunctionCalls()[0].Name)
}

func TestCloneHistoryDoesNotAlias(t *testing.T) {
	base := make([]Turn, 1, 4)
	base[0] = UserTurn("one")

	a := append(CloneHistory(base, 1), UserTurn("two"))
	b := append(CloneHistory(base, 1), UserTurn("three"))

	assert.Equal(t, "two", a[1].Text())
	assert.Equal(t, "three", b[1].Text())
	assert.Len(t, base, 1)
}
