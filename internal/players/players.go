// Package players provides a factory of agents from configuration strings.
// It also allows agent providers to register themselves.
package players

import (
	"slices"
	"strings"

	"github.com/janpfeifer/captureGo/internal/agents"
	"github.com/janpfeifer/captureGo/internal/generics"
	"github.com/janpfeifer/captureGo/internal/maze"
	"github.com/janpfeifer/captureGo/internal/parameters"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/pkg/errors"
)

// Player is anything that is able to control an agent in a game.
type Player interface {
	// RegisterInitialState is called once at the start of the game, before any action is requested.
	RegisterInitialState(gs GameState) error

	// ChooseAction returns the action to take in the given state, when it's the player's turn.
	ChooseAction(gs GameState) Direction
}

// DecisionReporter is implemented by players that can explain their last action.
type DecisionReporter interface {
	LastDecision() agents.Decision
}

// MatchInfo is given to the modules when creating players.
type MatchInfo struct {
	// Id is unique among matches.
	Id string

	// Name is used for logging and debugging.
	Name string

	// Distances is the maze distances oracle for the match grid, shared by all players. It may
	// be nil, in which case players compute their own.
	Distances *maze.Distancer
}

// Module must implement NewPlayer called at the start of a match, once per agent.
type Module interface {
	NewPlayer(match MatchInfo, agent int, params parameters.Params) (Player, error)
}

// moduleRegistration is a reference to the module and its name.
type moduleRegistration struct {
	Module
	Name string
}

var (
	// Registered external modules.
	keywordToModules = make(map[string]moduleRegistration)
)

// RegisterModule so it can be used by any of the front-ends to play.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = moduleRegistration{Name: name, Module: module}
}

// ModuleNames lists the registered modules, sorted.
func ModuleNames() []string {
	return slices.Collect(generics.SortedKeys(keywordToModules))
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the player. The value may be
	// changed by the program.
	DefaultPlayerConfig = "greedy:preset=forager"
)

// New creates a new player given the configuration string.
//
// Args:
//
//	config: the module name followed by a colon (":"), followed by a comma-separated list of
//		optional parameters with optional values associated. E.g.: "greedy:preset=raider,seed=3".
//		If empty, the default is given by DefaultPlayerConfig.
//
// More details on the config are dependent on the module used.
func New(match MatchInfo, agent int, config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}

	// Find moduleName.
	moduleName := config
	config = ""
	if moduleSplit := strings.Index(moduleName, ":"); moduleSplit != -1 {
		moduleName, config = moduleName[:moduleSplit], moduleName[moduleSplit+1:]
	}
	moduleName = strings.TrimSpace(moduleName)
	module, ok := keywordToModules[moduleName]
	if !ok {
		if len(keywordToModules) == 0 {
			return nil, errors.Errorf("unknown player %q: no modules registered. Perhaps you need to import _ \"github.com/janpfeifer/captureGo/internal/players/default\" to your binary ?", moduleName)
		}
		return nil, errors.Errorf("unknown player %q, registered players are %q", moduleName, ModuleNames())
	}

	params := parameters.NewFromConfigString(config)
	player, err := module.NewPlayer(match, agent, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q for agent %d", moduleName, agent)
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "player %q for agent %d", moduleName, agent)
	}
	return player, nil
}
