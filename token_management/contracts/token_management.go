package contracts

type ITokenManagement interface {
	UsedTokens(inputToken int, outputToken int)
	DisplayTokens(deployment string)
	GetCurrentTokenUsage() (total int, input int, output int)
	ClearToken()
}
