package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/config"
	"github.com/David-Botos/app-profiles/pkg/model"
)

const playCSV = `App,Category,Rating,Reviews,Size,Installs,Type,Price,Content Rating,Genres,Last Updated,Current Ver,Android Ver
Instagram,SOCIAL,4.5,66577313,Varies with device,"1,000,000,000+",Free,0,Teen,Social,"July 31, 2018",Varies with device,Varies with device
Instagram,SOCIAL,4.5,66577446,Varies with device,"1,000,000,000+",Free,0,Teen,Social,"July 31, 2018",Varies with device,Varies with device
Gmail,COMMUNICATION,4.3,4604324,Varies with device,"1,000,000,000+",Free,0,Everyone,Communication,"August 2, 2018",Varies with device,Varies with device
Tiny Chat,COMMUNICATION,4.0,12,1.2M,"10,000+",Free,0,Everyone,Communication,"May 1, 2018",1.0,4.1 and up
Minecraft,FAMILY,4.5,2376564,Varies with device,"10,000,000+",Paid,$6.99,Everyone 10+,Arcade;Action & Adventure,"July 24, 2018",1.5.2.1,Varies with device
Life Made WI-Fi Touchscreen Photo Frame,1.9,19,3.0M,"1,000+",Free,0,Everyone,,"February 11, 2018",1.0.19,4.0 and up
`

const iosCSV = `id,track_name,size_bytes,currency,price,rating_count_tot,rating_count_ver,user_rating,user_rating_ver,ver,cont_rating,prime_genre,sup_devices.num,ipadSc_urls.num,lang.num,vpp_lic
284882215,Facebook,389879808,USD,0.0,2974676,212,3.5,3.5,95.0,4+,Social Networking,37,1,29,1
389801252,Instagram,113954816,USD,0.0,2161558,1289,4.5,4.0,10.23,12+,Photo & Video,37,0,29,1
529479190,Clash of Clans,116476928,USD,0.0,2130805,579,4.5,4.5,9.24.12,9+,Games,38,5,18,1
1000000001,爱奇艺PPS -《欢乐颂2》电视剧热播,1,USD,0.0,100,1,4.0,4.0,1.0,4+,Entertainment,37,5,1,1
1000000002,Minecraft: Pocket Edition,1,USD,6.99,522012,1,4.5,4.5,1.0,9+,Games,37,5,1,1
`

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	androidPath := filepath.Join(dir, "googleplaystore.csv")
	iosPath := filepath.Join(dir, "AppleStore.csv")
	require.NoError(t, os.WriteFile(androidPath, []byte(playCSV), 0o600))
	require.NoError(t, os.WriteFile(iosPath, []byte(iosCSV), 0o600))

	android := config.AndroidDefaults()
	android.Path = androidPath
	ios := config.IOSDefaults()
	ios.Path = iosPath

	var out bytes.Buffer
	return &app{
		out: &out,
		cfg: &config.Config{
			Android:     &android,
			IOS:         &ios,
			ExploreRows: 3,
		},
		logger: zap.NewNop(),
	}, &out
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestAnalyzeCmd(t *testing.T) {
	a, out := testApp(t)

	require.NoError(t, execute(t, createAnalyzeCmd(a)))

	got := out.String()
	assert.Contains(t, got, "== android ==")
	assert.Contains(t, got, "Verified 3 rows of android")
	assert.Contains(t, got, "COMMUNICATION : 66.67")
	assert.Contains(t, got, "SOCIAL : 33.33")
	assert.Contains(t, got, "== ios ==")
	assert.Contains(t, got, "Verified 3 rows of ios")
	assert.Contains(t, got, "Social Networking : 2,974,676")
}

func TestFreqCmd_ByHeaderName(t *testing.T) {
	a, out := testApp(t)

	require.NoError(t, execute(t, createFreqCmd(a), "ios", "prime_genre"))
	assert.Equal(t, "Social Networking : 33.33\nPhoto & Video : 33.33\nGames : 33.33\n", out.String())
}

func TestFreqCmd_UnknownColumn(t *testing.T) {
	a, _ := testApp(t)
	assert.Error(t, execute(t, createFreqCmd(a), "ios", "nope"))
	assert.Error(t, execute(t, createFreqCmd(a), "ios", "99"))
}

func TestDuplicatesCmd(t *testing.T) {
	a, out := testApp(t)

	require.NoError(t, execute(t, createDuplicatesCmd(a), "android"))
	assert.Equal(t,
		"Number of duplicate apps: 1\nExamples of duplicate apps: Instagram\nExpected length: 4\n",
		out.String())
}

func TestListCmd(t *testing.T) {
	a, out := testApp(t)

	require.NoError(t, execute(t, createListCmd(a), "android", "COMMUNICATION", "--values", "1,000,000,000+"))
	assert.Equal(t, "Gmail : 1,000,000,000+\n", out.String())
}

func TestMeanCmd(t *testing.T) {
	a, out := testApp(t)

	require.NoError(t, execute(t, createMeanCmd(a), "android", "COMMUNICATION", "--below", "100000000"))
	assert.Equal(t, "COMMUNICATION : 10000.00\n", out.String())
}

func TestMeanCmd_EmptyGroup(t *testing.T) {
	a, _ := testApp(t)
	assert.Error(t, execute(t, createMeanCmd(a), "android", "WEATHER"))
}

func TestExploreCmd_Raw(t *testing.T) {
	a, out := testApp(t)

	require.NoError(t, execute(t, createExploreCmd(a), "android", "--raw", "--start", "5", "--end", "6"))
	assert.Contains(t, out.String(), "Life Made WI-Fi Touchscreen Photo Frame")
	assert.Contains(t, out.String(), "Number of rows: 6\n")
}

func TestUnknownDataset(t *testing.T) {
	a, _ := testApp(t)
	assert.Error(t, execute(t, createAvgCmd(a), "windows"))
}

func TestResolveColumn(t *testing.T) {
	ds := &model.Dataset{Header: []string{"App", "Category"}}

	idx, err := resolveColumn(ds, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = resolveColumn(ds, "category")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug", "json")
	assert.NoError(t, err)

	_, err = newLogger("loud", "console")
	assert.Error(t, err)
}
