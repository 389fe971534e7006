package plugin_test

import (
	"testing"

	. "github.com/pseudomuto/stencil/pkg/plugin"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRegister(t *testing.T) {
	t.Run("commands are sorted by name", func(t *testing.T) {
		Register("zeta", func() *cli.Command { return &cli.Command{Name: "zeta"} })
		Register("alpha", func() *cli.Command { return &cli.Command{Name: "alpha"} })

		var names []string
		for _, cmd := range Commands() {
			names = append(names, cmd.Name)
		}

		require.Equal(t, []string{"alpha", "zeta"}, names)
		require.Equal(t, []string{"alpha", "zeta"}, Names())
	})

	t.Run("duplicate names panic", func(t *testing.T) {
		Register("dup", func() *cli.Command { return &cli.Command{Name: "dup"} })

		require.PanicsWithValue(t, "plugin: Register called twice for plugin dup", func() {
			Register("dup", func() *cli.Command { return &cli.Command{Name: "dup"} })
		})
	})

	t.Run("nil factories panic", func(t *testing.T) {
		require.PanicsWithValue(t, "plugin: Register factory is nil", func() {
			Register("nil-factory", nil)
		})
	})
}
