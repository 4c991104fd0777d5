package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const reutersSample = `<REUTERS TOPICS="YES" NEWID="1">
<TEXT>
<TITLE>COCOA EXPORTS</TITLE>
<BODY>Showers continued throughout the week in
the Bahia cocoa zone, alleviating the drought.  Output rose 12 pct
in March. Farmers are, however, still cautious.
 Reuter
&#3;</BODY></TEXT>
</REUTERS>
<REUTERS TOPICS="NO" NEWID="2">
<TEXT><body>Prices held steady Reuter &#3;</body></TEXT>
</REUTERS>
<REUTERS NEWID="3"><TEXT><TITLE>NO BODY</TITLE></TEXT></REUTERS>`

func TestExtractReuters(t *testing.T) {
	sentences, err := ExtractReuters(strings.NewReader(reutersSample))
	require.NoError(t, err)
	require.Equal(t, []string{
		"Showers continued throughout the week in the Bahia cocoa zone, alleviating the drought",
		"Farmers are, however, still cautious",
		"Prices held steady",
	}, sentences)
}

func TestExtractReutersNoBodies(t *testing.T) {
	sentences, err := ExtractReuters(strings.NewReader("<REUTERS></REUTERS>"))
	require.NoError(t, err)
	require.Empty(t, sentences)
}
