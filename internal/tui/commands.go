package tui

import (
	"fmt"
	"strings"

	"github.com/tatianab/step-quest/internal/rules"
)

type commandKind int

const (
	cmdStep commandKind = iota
	cmdAttack
	cmdPotion
	cmdBuy
	cmdSave
	cmdLoad
	cmdSaves
	cmdHelp
	cmdQuit
)

type command struct {
	kind commandKind
	item rules.ShopItem
}

func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("type a command")
	}
	switch fields[0] {
	case "step", "s", "walk":
		return command{kind: cmdStep}, nil
	case "attack", "a", "fight":
		return command{kind: cmdAttack}, nil
	case "potion", "p", "drink", "heal":
		return command{kind: cmdPotion}, nil
	case "buy", "b":
		if len(fields) < 2 {
			return command{}, fmt.Errorf("buy what? try: buy potion, buy weapon, buy armor")
		}
		return command{kind: cmdBuy, item: rules.ShopItem(fields[1])}, nil
	case "save", "/save":
		return command{kind: cmdSave}, nil
	case "load", "/load":
		return command{kind: cmdLoad}, nil
	case "saves", "slots", "/saves":
		return command{kind: cmdSaves}, nil
	case "help", "?", "/help":
		return command{kind: cmdHelp}, nil
	case "quit", "/quit", "exit":
		return command{kind: cmdQuit}, nil
	}
	return command{}, fmt.Errorf("unknown command %q", fields[0])
}
