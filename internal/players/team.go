package players

import (
	"os"
	"strings"

	"github.com/janpfeifer/captureGo/internal/generics"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TeamSpec describes the players of a team: one configuration string per agent of the team, in
// the order of the agent indices.
type TeamSpec struct {
	Name   string   `yaml:"name"`
	Agents []string `yaml:"agents"`
}

// String returns the team name, or the configurations of its agents if it has no name.
func (t *TeamSpec) String() string {
	if t.Name != "" {
		return t.Name
	}
	return strings.Join(t.Agents, " + ")
}

// Config returns the configuration of the ii-th agent of the team. If there are fewer
// configurations than agents, the last one is repeated. An empty team uses DefaultPlayerConfig.
func (t *TeamSpec) Config(ii int) string {
	if len(t.Agents) == 0 {
		return DefaultPlayerConfig
	}
	return t.Agents[min(ii, len(t.Agents)-1)]
}

// LoadTeamFile reads a team description from a YAML file, like:
//
//	name: foragers
//	agents:
//	  - greedy:preset=forager,seed=1
//	  - greedy:preset=raider
func LoadTeamFile(path string) (*TeamSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read team file %q", path)
	}
	var spec TeamSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrapf(err, "failed to parse team file %q", path)
	}
	if len(spec.Agents) == 0 {
		return nil, errors.Errorf("team file %q defines no agents", path)
	}
	return &spec, nil
}

// ParseTeam parses a team given in the command line: either "@<path>" to a YAML team file (see
// LoadTeamFile), or a ";" separated list of player configurations.
func ParseTeam(arg string) (*TeamSpec, error) {
	if path, isFile := strings.CutPrefix(arg, "@"); isFile {
		return LoadTeamFile(path)
	}
	spec := &TeamSpec{}
	for _, config := range strings.Split(arg, ";") {
		if config = strings.TrimSpace(config); config != "" {
			spec.Agents = append(spec.Agents, config)
		}
	}
	return spec, nil
}

// NewTeam creates the players of a team, for the given agent indices.
func NewTeam(spec *TeamSpec, match MatchInfo, indices []int) ([]Player, error) {
	team := make([]Player, 0, len(indices))
	for ii, agent := range indices {
		player, err := New(match, agent, spec.Config(ii))
		if err != nil {
			return nil, errors.WithMessagef(err, "team %s", spec)
		}
		team = append(team, player)
	}
	return team, nil
}

// UsedModules returns the set of module names used by the team.
func (t *TeamSpec) UsedModules() generics.Set[string] {
	modules := generics.MakeSet[string]()
	for ii := range max(len(t.Agents), 1) {
		name, _, _ := strings.Cut(t.Config(ii), ":")
		modules.Insert(strings.TrimSpace(name))
	}
	return modules
}
