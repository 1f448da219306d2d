// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingInputId Id = iota + 1
	InvalidRequestId
	InvalidRepositorySyntaxId
	UnknownLayoutId
	NoRepositoryConfiguredId
	ConfigLoadFailedId
	ProjectLoadFailedId
	ExecutorNotAvailableId
	InstallFailedId
	DeployFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // Maven documentation for the failing step
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

const (
	installFileDoc HttpLink = "https://maven.apache.org/plugins/maven-install-plugin/install-file-mojo.html"
	deployFileDoc  HttpLink = "https://maven.apache.org/plugins/maven-deploy-plugin/deploy-file-mojo.html"
	distMgmtDoc    HttpLink = "https://maven.apache.org/pom.html#Distribution_Management"
)

var (
	render = glamour.Render

	missingInputIssue = &Issue{
		id: MissingInputId,
		mdMsg: `
# Descriptor file not found!

The file passed with ` + "`--pom-name`" + ` does not exist, so nothing was installed or deployed.

## Things you can try:
- Check the path; relative paths are resolved from the current directory
- Generate the descriptor before running the publish step
- Only warn instead of failing when the file is optional:
~~~
$ pom-deployer add-pom --error-on-missing=false ...
~~~`,
		docLinks: []HttpLink{installFileDoc},
	}

	invalidRequestIssue = &Issue{
		id: InvalidRequestId,
		mdMsg: `
# Invalid publish parameters!

` + "`--pom-name`, `--group-id` and `--artifact-id`" + ` are required. Group and artifact ids
may only contain letters, digits, ` + "`_`, `-` and `.`" + `.

## Example:
~~~
$ pom-deployer add-pom --pom-name target/bom.xml --group-id org.example --artifact-id my-bom
~~~`,
	}

	invalidRepositorySyntaxIssue = &Issue{
		id: InvalidRepositorySyntaxId,
		mdMsg: `
# Invalid alternate repository!

Alternate deployment repositories use the form ` + "`id::layout::url`" + `:

- **id** selects the credentials (the ` + "`servers`" + ` entry in your config)
- **layout** is ` + "`default`" + ` (Maven 2 and 3) or ` + "`legacy`" + ` (Maven 1)
- **url** is the repository root

## Example:
~~~
$ pom-deployer add-pom ... --alt-deployment-repository releases::default::https://repo.example/releases
~~~

URLs that contain ` + "`::`" + ` (IPv6 literals) are not supported; use a host name.`,
		docLinks: []HttpLink{deployFileDoc},
	}

	unknownLayoutIssue = &Issue{
		id: UnknownLayoutId,
		mdMsg: `
# Unknown repository layout!

The layout segment of the repository must be ` + "`default`" + ` or ` + "`legacy`" + `.
Layout names are case sensitive.`,
		docLinks: []HttpLink{deployFileDoc},
	}

	noRepositoryConfiguredIssue = &Issue{
		id: NoRepositoryConfiguredId,
		mdMsg: `
# No deployment repository!

The project has no ` + "`distributionManagement`" + ` repository for this version and no
alternate repository was given.

## Things you can try:
- Add a repository to the project's pom.xml:
~~~xml
<distributionManagement>
  <repository>
    <id>releases</id>
    <url>https://repo.example/releases</url>
  </repository>
  <snapshotRepository>
    <id>snapshots</id>
    <url>https://repo.example/snapshots</url>
  </snapshotRepository>
</distributionManagement>
~~~

- Or pass an alternate repository:
~~~
$ pom-deployer add-pom ... --alt-deployment-repository releases::default::https://repo.example/releases
~~~`,
		docLinks: []HttpLink{distMgmtDoc},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where the configuration is read from:
~~~
$ pom-deployer config path
~~~

- Print the effective configuration:
~~~
$ pom-deployer config show
~~~

- Recreate a default file:
~~~
$ pom-deployer config init
~~~`,
	}

	projectLoadFailedIssue = &Issue{
		id: ProjectLoadFailedId,
		mdMsg: `
# Failed to load the project!

The descriptor inherits its version from the enclosing build, so a readable
pom.xml with a ` + "`version`" + ` (or a parent version) is required.

## Things you can try:
- Run from the build's directory or pass ` + "`--project path/to/pom.xml`" + `
- Check the pom.xml is well-formed XML`,
	}

	executorNotAvailableIssue = &Issue{
		id: ExecutorNotAvailableId,
		mdMsg: `
# Executor not available!

The ` + "`maven`" + ` executor needs the ` + "`mvn`" + ` binary.

## Things you can try:
- Install Maven and make sure ` + "`mvn`" + ` is on your PATH
- Point ` + "`maven.binary`" + ` in your config at the binary
- Use the built-in executor:
~~~
$ pom-deployer add-pom --executor builtin ...
~~~`,
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Install failed!

The descriptor could not be installed into the local repository.

## Things you can try:
- Check that the local repository directory is writable
- Re-run with ` + "`--verbose`" + ` to see the executor output`,
		docLinks: []HttpLink{installFileDoc},
	}

	deployFailedIssue = &Issue{
		id: DeployFailedId,
		mdMsg: `
# Deploy failed!

The repository rejected the upload or could not be reached. The local
install already completed and was not rolled back.

## Things you can try:
- Check the repository URL
- Check the credentials of the ` + "`servers`" + ` entry whose id matches the repository id
- Releases usually cannot be redeployed; bump the version`,
		docLinks: []HttpLink{deployFileDoc},
	}

	issues = map[Id]*Issue{
		missingInputIssue.Id():            missingInputIssue,
		invalidRequestIssue.Id():          invalidRequestIssue,
		invalidRepositorySyntaxIssue.Id(): invalidRepositorySyntaxIssue,
		unknownLayoutIssue.Id():           unknownLayoutIssue,
		noRepositoryConfiguredIssue.Id():  noRepositoryConfiguredIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		projectLoadFailedIssue.Id():       projectLoadFailedIssue,
		executorNotAvailableIssue.Id():    executorNotAvailableIssue,
		installFailedIssue.Id():           installFailedIssue,
		deployFailedIssue.Id():            deployFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
