package pcomb_test

import (
	"testing"

	. "github.com/corvidlabs/pcomb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CSV struct {
	header []string
	rows   [][]string
}

var parsecsv = Recursive(func(p Parser[CSV]) Parser[CSV] {
	parsequoted := Wrap(
		Rune('"'),
		Coroutine("quoted_field", func(c *Context) (string, error) {
			var escaped bool
			var out string

			for {
				r, _, err := c.Scanner().ReadRune()
				if err != nil {
					return "", err
				}

				if !escaped && r == '"' {
					if err := c.Scanner().UnreadRune(); err != nil {
						return "", err
					}

					break
				}

				out += string(r)

				escaped = !escaped && r == '\\'
			}

			return out, nil
		}),
		Rune('"'),
	)

	parserow := SepBy1(Rune(','), Or(parsequoted, TakeTill(Runes(',', '\n'))))

	return Lift2(
		Error2(func(header []string, rows [][]string) CSV {
			return CSV{header: header, rows: rows}
		}),
		parserow,
		DiscardLeft(Rune('\n'), SepBy(Rune('\n'), parserow)),
	)
})

const csvBody = `header_one,header_two,header_three,header four
1,2,3
4,5,6
"seven,eight","nine,ten","eleven,twelve"`

func TestCSV(t *testing.T) {
	csv, err := parsecsv.Parse(csvBody)
	require.NoError(t, err)
	assert.Equal(t, CSV{
		[]string{"header_one", "header_two", "header_three", "header four"},
		[][]string{
			{"1", "2", "3"},
			{"4", "5", "6"},
			{"seven,eight", "nine,ten", "eleven,twelve"},
		},
	}, csv)
}
