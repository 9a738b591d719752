package console

import "fmt"

// Help prints the usage guide.
func (c *Console) Help() {
	t := c.theme
	fmt.Fprintf(c.out, `
%s
%s

%s
  -e, --email EMAIL       Investigate a single email address
  -f, --file FILE         Batch investigate emails from file
  -s, --setup             Setup GHunt authentication
  -i, --install           Install/reinstall GHunt
      --no-banner         Skip banner display
      --no-color          Disable colors
      --results-dir DIR   Folder for result files (default: results)
      --timeout DURATION  Per-email GHunt timeout (default: 60s)
      --config PATH       Read configuration from PATH
      --debug             Log diagnostics to stderr
      --version           Print version and exit
  -h, --help              Show this help message

%s
  goosint -e target@gmail.com
  goosint -f email_list.txt
  goosint --setup

%s
  Create a text file with one email per line:
  target1@gmail.com
  target2@gmail.com
  target3@gmail.com

%s
  Results are saved in JSON format to: results/
  Each investigation session creates a timestamped file.

%s
  This tool is for educational and legal OSINT purposes only.
  Always ensure you have proper authorization before investigating.

%s
`,
		t.LightBlue.Render("GoOsint Help"),
		t.Yellow.Render(c.rule("=", 50)),
		t.Green.Render("Commands:"),
		t.Green.Render("Examples:"),
		t.Green.Render("Email List Format:"),
		t.Green.Render("Output:"),
		t.Red.Render("Legal Notice:"),
		t.LightBlue.Render(c.rule("=", 50)),
	)
}
