package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockPrimarySignerForTest creates a new mock PrimarySigner for testing
func NewMockPrimarySignerForTest(t *testing.T) *MockPrimarySigner {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockPrimarySigner(ctrl)
}

// NewMockSignatureValidatorForTest creates a new mock SignatureValidator for testing
func NewMockSignatureValidatorForTest(t *testing.T) *MockSignatureValidator {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockSignatureValidator(ctrl)
}

// NewMockClientForTest creates a new mock chain Client for testing
func NewMockClientForTest(t *testing.T) *MockClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockClient(ctrl)
}
