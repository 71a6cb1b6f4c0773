package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qconsole completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Bash\n")
		fmt.Fprintf(os.Stderr, "  qconsole completion bash > /usr/local/etc/bash_completion.d/qconsole\n")
		fmt.Fprintf(os.Stderr, "  # Zsh\n")
		fmt.Fprintf(os.Stderr, "  qconsole completion zsh > \"${fpath[1]}/_qconsole\"\n")
		fmt.Fprintf(os.Stderr, "  # Fish\n")
		fmt.Fprintf(os.Stderr, "  qconsole completion fish > ~/.config/fish/completions/qconsole.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	shell := fs.Arg(0)
	switch shell {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", shell)
		os.Exit(1)
	}
}

func generateBashCompletion() string {
	return `# bash completion for qconsole                           -*- shell-script -*-

_qconsole() {
    local cur prev words cword
    _init_completion || return

    local commands="run parse history snapshot templates completion version help"

    local run_flags="--file --env --copy --raw --verbose --timeout"
    local parse_flags="--file --curl --env --show-key"
    local history_commands="list search clear export"
    local history_flags="-n --output"
    local snapshot_flags="--env --size --out"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --file|--out|--output)
            _filedir
            return
            ;;
        --env|--timeout|--size|-n)
            return
            ;;
    esac

    case "${command}" in
        run)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${run_flags}" -- "${cur}"))
            fi
            ;;
        parse)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${parse_flags}" -- "${cur}"))
            fi
            ;;
        history)
            if [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "${history_commands}" -- "${cur}"))
            elif [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            fi
            ;;
        templates)
            if [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "list show" -- "${cur}"))
            fi
            ;;
        snapshot)
            if [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "download" -- "${cur}"))
            elif [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${snapshot_flags}" -- "${cur}"))
            fi
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _qconsole qconsole
`
}

func generateZshCompletion() string {
	return `#compdef qconsole

# zsh completion for qconsole

_qconsole() {
    local -a commands
    commands=(
        'run:Parse and send a request snippet'
        'parse:Parse a request snippet and print the descriptor'
        'history:List, search, clear or export the request history'
        'snapshot:Download a collection snapshot'
        'templates:List built-in snippets or print one'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'qconsole commands' commands
            ;;
        args)
            case $words[1] in
                run)
                    _arguments \
                        '--file[Read the snippet from a file]:file:_files' \
                        '--env[Connection name]:connection name:' \
                        '--copy[Copy the response payload to the clipboard]' \
                        '--raw[Print the result as JSON]' \
                        '--verbose[Show timing details]' \
                        '--timeout[Request timeout]:timeout:'
                    ;;
                parse)
                    _arguments \
                        '--file[Read the snippet from a file]:file:_files' \
                        '--curl[Print the request as a curl command]' \
                        '--env[Connection name]:connection name:' \
                        '--show-key[Include the api key in the curl command]'
                    ;;
                history)
                    _arguments \
                        '1:history command:(list search clear export)' \
                        '-n[Number of entries to list]:count:' \
                        '--output[Export destination file]:file:_files'
                    ;;
                snapshot)
                    _arguments \
                        '1:snapshot command:(download)' \
                        '--env[Connection name]:connection name:' \
                        '--size[Snapshot size in bytes]:size:' \
                        '--out[Output file]:file:_files'
                    ;;
                templates)
                    _arguments \
                        '1:templates command:(list show)'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_qconsole "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for qconsole

# Disable file completions by default
complete -c qconsole -f

# Subcommands
complete -c qconsole -n '__fish_use_subcommand' -a run -d 'Parse and send a request snippet'
complete -c qconsole -n '__fish_use_subcommand' -a parse -d 'Parse a request snippet and print the descriptor'
complete -c qconsole -n '__fish_use_subcommand' -a history -d 'List, search, clear or export the request history'
complete -c qconsole -n '__fish_use_subcommand' -a snapshot -d 'Download a collection snapshot'
complete -c qconsole -n '__fish_use_subcommand' -a templates -d 'List built-in snippets or print one'
complete -c qconsole -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c qconsole -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c qconsole -n '__fish_use_subcommand' -a help -d 'Show help message'

# run flags
complete -c qconsole -n '__fish_seen_subcommand_from run' -l file -d 'Read the snippet from a file' -rF
complete -c qconsole -n '__fish_seen_subcommand_from run' -l env -d 'Connection name' -r
complete -c qconsole -n '__fish_seen_subcommand_from run' -l copy -d 'Copy the response payload to the clipboard'
complete -c qconsole -n '__fish_seen_subcommand_from run' -l raw -d 'Print the result as JSON'
complete -c qconsole -n '__fish_seen_subcommand_from run' -l verbose -d 'Show timing details'
complete -c qconsole -n '__fish_seen_subcommand_from run' -l timeout -d 'Request timeout' -r

# parse flags
complete -c qconsole -n '__fish_seen_subcommand_from parse' -l file -d 'Read the snippet from a file' -rF
complete -c qconsole -n '__fish_seen_subcommand_from parse' -l curl -d 'Print the request as a curl command'
complete -c qconsole -n '__fish_seen_subcommand_from parse' -l env -d 'Connection name' -r
complete -c qconsole -n '__fish_seen_subcommand_from parse' -l show-key -d 'Include the api key in the curl command'

# history
complete -c qconsole -n '__fish_seen_subcommand_from history' -a 'list search clear export'
complete -c qconsole -n '__fish_seen_subcommand_from history' -s n -d 'Number of entries to list' -r
complete -c qconsole -n '__fish_seen_subcommand_from history' -l output -d 'Export destination file' -rF

# snapshot
complete -c qconsole -n '__fish_seen_subcommand_from snapshot' -a download
complete -c qconsole -n '__fish_seen_subcommand_from snapshot' -l env -d 'Connection name' -r
complete -c qconsole -n '__fish_seen_subcommand_from snapshot' -l size -d 'Snapshot size in bytes' -r
complete -c qconsole -n '__fish_seen_subcommand_from snapshot' -l out -d 'Output file' -rF

# templates
complete -c qconsole -n '__fish_seen_subcommand_from templates' -a 'list show'

# completion - shell names
complete -c qconsole -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
