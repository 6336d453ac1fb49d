package domain

// Configuration is everything a game needs to know before the second player
// joins: the board size and the rule that decides a win.
type Configuration struct {
	Size        Size
	WinningRule WinningRule
}

// CommonConfiguration is the classic 7x6 board with four in a row.
func CommonConfiguration() Configuration {
	rule, _ := NewCommonWinningRule(ToWin)
	return Configuration{
		Size:        Size{Width: Columns, Height: Rows},
		WinningRule: rule,
	}
}

func NewConfiguration(width, height, requiredMatches int) (Configuration, error) {
	size, err := NewSize(width, height)
	if err != nil {
		return Configuration{}, err
	}
	rule, err := NewCommonWinningRule(requiredMatches)
	if err != nil {
		return Configuration{}, err
	}
	return Configuration{Size: size, WinningRule: rule}, nil
}
