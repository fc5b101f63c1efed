package token_management

import (
	"fmt"

	"archdoc/constants/lipgloss"
	"archdoc/token_management/contracts"
)

// TokenManager implementation
type tokenManager struct {
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token count for the run.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

func (tm *tokenManager) DisplayTokens(deployment string) {
	if tm.usedToken == 0 {
		return
	}

	tokenInfo := fmt.Sprintf("Token Used: %d (Input: %d, Output: %d) - Deployment: %s",
		tm.usedToken, tm.usedInputToken, tm.usedOutputToken, deployment)

	tokenBox := lipgloss.BoxStyle.Render(tokenInfo)
	fmt.Println(tokenBox)
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) ClearToken() {
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
