package format

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestPrice_GroupsDigits(t *testing.T) {
	p := message.NewPrinter(language.English)

	require.Equal(t, "₹8,500,000", Price(p, 850_000_000, "₹"))
	require.Equal(t, "$12", Price(p, 1_299, "$"))
	require.Equal(t, "₹0", Price(p, 0, "₹"))
	require.Equal(t, "-₹1,000", Price(p, -100_000, "₹"))
}

func TestPrice_NilPrinter(t *testing.T) {
	require.Equal(t, "1,000", Price(nil, 100_000, ""))
}

func TestPrinter_FallsBackOnBadLocale(t *testing.T) {
	require.Equal(t, "1,234", Printer("not a locale!").Sprintf("%d", 1234))
	require.Equal(t, "1,234", Printer("en-US").Sprintf("%d", 1234))
}
