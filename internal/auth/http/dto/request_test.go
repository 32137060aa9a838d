package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateClientRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   CreateClientRequest
		shouldErr bool
	}{
		{"valid", CreateClientRequest{Name: "analytics-service", IsActive: true}, false},
		{"missing name", CreateClientRequest{}, true},
		{"blank name", CreateClientRequest{Name: "   "}, true},
		{"name too long", CreateClientRequest{Name: strings.Repeat("a", 256)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIssueTokenRequest_Validate(t *testing.T) {
	validID := "0190a4f6-6c35-7b47-9c9e-6f1d2f3a4b5c"

	tests := []struct {
		name      string
		request   IssueTokenRequest
		shouldErr bool
	}{
		{"valid", IssueTokenRequest{ClientID: validID, ClientSecret: "secret"}, false},
		{"missing client id", IssueTokenRequest{ClientSecret: "secret"}, true},
		{"client id not a uuid", IssueTokenRequest{ClientID: "abc", ClientSecret: "secret"}, true},
		{"missing secret", IssueTokenRequest{ClientID: validID}, true},
		{"blank secret", IssueTokenRequest{ClientID: validID, ClientSecret: " "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
