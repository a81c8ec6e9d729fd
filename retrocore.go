// This file is part of Retrocore.
//
// Retrocore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retrocore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retrocore.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/retrocore/cores/cpc"
	"github.com/jetsetilly/retrocore/cores/gpgx"
	"github.com/jetsetilly/retrocore/cores/lynx"
	"github.com/jetsetilly/retrocore/cores/native"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/digest"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/hostaudio"
	"github.com/jetsetilly/retrocore/imageloader"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/jetsetilly/retrocore/luascript"
	"github.com/jetsetilly/retrocore/modalflag"
	"github.com/jetsetilly/retrocore/prefs"
	"github.com/jetsetilly/retrocore/recorder"
	"github.com/jetsetilly/retrocore/rewind"
	"github.com/jetsetilly/retrocore/scheduler"
	"github.com/jetsetilly/retrocore/statsview"
	"github.com/jetsetilly/retrocore/terminal"
	"github.com/jetsetilly/retrocore/tools"
	"github.com/jetsetilly/retrocore/tools/dialogprompt"
	"github.com/jetsetilly/retrocore/version"
	"github.com/jetsetilly/retrocore/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "RECORD", "PLAYBACK", "DIGEST", "DUMP")
	showVersion := md.AddBool("version", false, "print version information")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	if *showVersion {
		fmt.Println(version.Version())
		os.Exit(0)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, false)
	case "RECORD":
		err = run(md, true)
	case "PLAYBACK":
		err = playback(md)
	case "DIGEST":
		err = digestMode(md)
	case "DUMP":
		err = dump(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// flags shared by every mode that creates an emulation core
type coreFlags struct {
	system   *string
	options  *string
	prefs    *string
	firmware *string
	log      *bool
}

func addCoreFlags(md *modalflag.Modes) coreFlags {
	return coreFlags{
		system:   md.AddString("system", "AUTO", "force system: AmstradCPC, LYNX, GEN"),
		options:  md.AddString("options", "", "per-title options (key::value; key::value)"),
		prefs:    md.AddString("prefs", "", "preferences (key::value; key::value)"),
		firmware: md.AddString("firmware", tools.DefaultPaths().Firmware, "firmware directory"),
		log:      md.AddBool("log", false, "echo log to stdout"),
	}
}

// the firmware files that are looked for in the firmware directory. the
// filename is "<system>/<firmware ID>.rom"
var firmwareFiles = []struct{ system, id string }{
	{cpc.SystemID, cpc.FirmwareOS},
	{cpc.SystemID, cpc.FirmwareBASIC},
	{lynx.SystemID, lynx.FirmwareBoot},
	{gpgx.SystemID, gpgx.FirmwareCDBIOS},
}

func loadFirmware(env *environment.Environment, dir string) emulation.FirmwareSet {
	fw := emulation.FirmwareSet{}
	for _, f := range firmwareFiles {
		fn := filepath.Join(dir, f.system, f.id+".rom")
		d, err := os.ReadFile(fn)
		if err != nil {
			continue // for loop
		}
		fw.Add(f.system, f.id, d)
		logger.Logf(env, "firmware", "%s/%s from %s", f.system, f.id, fn)
	}
	return fw
}

// create the core for the image named in the remaining arguments. a CPC with
// no tape is created if there are no arguments
func createCore(md *modalflag.Modes, cf coreFlags) (*environment.Environment, emulation.Emulator, emulation.GameInfo, error) {
	if *cf.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	env := environment.NewEnvironment(environment.MainEmulation, nil)
	if *cf.prefs != "" {
		var cl prefs.CommandLine
		cl.Push(*cf.prefs)
		if err := cl.Apply(env.Prefs.Named()); err != nil {
			return nil, nil, emulation.GameInfo{}, err
		}
		if unused := cl.Pop(); unused != "" {
			logger.Logf(env, "prefs", "unused preferences: %s", unused)
		}
	}

	comm := emulation.CoreComm{
		Env:      env,
		Firmware: loadFirmware(env, *cf.firmware),
	}

	var ld imageloader.Loader
	switch len(md.RemainingArgs()) {
	case 0:
		ld = imageloader.NewLoader("", cpc.SystemID)
	case 1:
		ld = imageloader.NewLoader(md.GetArg(0), *cf.system)
		if err := ld.Load(); err != nil {
			return nil, nil, emulation.GameInfo{}, err
		}
	default:
		return nil, nil, emulation.GameInfo{}, fmt.Errorf("too many arguments for %s mode", md)
	}

	game := ld.GameInfo(*cf.options)

	switch ld.System {
	case cpc.SystemID:
		c, err := cpc.NewCPC(comm, game, ld.Data)
		if err != nil {
			return nil, nil, game, err
		}
		return env, c, game, nil
	case lynx.SystemID, gpgx.SystemID:
		// engines for these systems live outside the Go runtime and none
		// are linked into this program
		return nil, nil, game, curated.Errorf(native.NoEngine, ld.System)
	}

	return nil, nil, game, curated.Errorf(imageloader.UnknownSystem, ld.Filename)
}

// keys that are handled by the run loop rather than the emulated keyboard
const (
	hotkeyRewind    = 0x12 // ctrl-r
	hotkeySaveState = 0x13 // ctrl-s
	hotkeyLoadState = 0x0c // ctrl-l
)

func run(md *modalflag.Modes, record bool) error {
	md.NewMode()

	cf := addCoreFlags(md)
	fps := md.AddFloat64("fps", 50.0, "frames per second")
	frames := md.AddInt("frames", 0, "stop after number of frames (0 runs until ctrl-c)")
	script := md.AddString("lua", "", "lua script to run")
	wav := md.AddString("wav", "", "record audio to wav file")
	cheats := md.AddString("cheats", "", "cheat file to apply")
	mute := md.AddBool("mute", false, "no audio output")
	stats := md.AddString("stats", "", "run stats server at address (build with statsview tag)")
	output := md.AddString("o", "", "recording file (RECORD mode only)")
	dialogs := md.AddBool("dialogs", false, "use native dialogs to ask for missing files")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *fps <= 0 {
		return fmt.Errorf("fps must be greater than zero")
	}

	env, emu, game, err := createCore(md, cf)
	if err != nil {
		return err
	}
	defer emu.Dispose()

	sch := scheduler.NewScheduler(env, emu)

	if *stats != "" {
		if !statsview.Available() {
			return fmt.Errorf("stats server not available in this build")
		}
		defer statsview.Launch(os.Stdout, *stats)()
	}

	// the terminal keyboard is the first observer so that it has prepared
	// the key presses for the frame before anything samples them
	km := terminal.KeyMap{}
	for b, k := range terminal.CPCKeyMap {
		km[b] = k
	}
	km[0x10] = []string{"Play Tape"} // ctrl-p
	km[0x0f] = []string{"Stop Tape"} // ctrl-o
	km[0x17] = []string{"Rewind Tape"} // ctrl-w
	kb := terminal.NewKeyboard(km, 2)
	kb.SetHotkeys(hotkeyRewind, hotkeySaveState, hotkeyLoadState)
	sch.AddObserver("keyboard", kb)

	var aud *hostaudio.Audio
	var sound tools.Sound
	if !*mute {
		aud, err = hostaudio.NewAudio(env)
		if err != nil {
			logger.Log(env, "audio", err.Error())
			aud = nil
		} else {
			defer aud.Close()
			sound = aud
		}
	}

	var prompt tools.Prompter
	if *dialogs {
		prompt = dialogprompt.NewPrompter()
	}
	ses := tools.NewSession(env, sound, prompt)
	ses.SetEmulator(emu, game)
	if ld := md.GetArg(0); ld != "" {
		ses.Recent.Add(ld)
	}

	if *cheats == "" && *dialogs {
		*cheats, err = ses.GetCheatFileFromUser("")
		if err != nil {
			return err
		}
	}
	if *cheats != "" {
		f, err := os.Open(*cheats)
		if err != nil {
			return err
		}
		err = ses.Cheats.Load(f)
		f.Close()
		if err != nil {
			return err
		}
		ses.UpdateCheatRelatedTools()
		sch.AddObserver("cheats", ses.Cheats)
	}

	if *script != "" {
		scr := luascript.NewScript(env, emu, os.Stdout)
		defer scr.Close()
		if err := scr.RunFile(*script); err != nil {
			return err
		}
		sch.AddObserver("lua", scr)
	}

	if *wav != "" {
		aw, err := wavwriter.New(env, *wav)
		if err != nil {
			return err
		}
		defer func() {
			if err := aw.Close(); err != nil {
				fmt.Printf("* %v\n", err)
			}
		}()
		sch.AddObserver("wav", aw)
	}

	if record {
		fn := *output
		if fn == "" {
			fn = fmt.Sprintf("%s_%s.rec", tools.FilesystemSafeName(game.Name), time.Now().Format("20060102_150405"))
		}
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()

		rec, err := recorder.NewRecorder(w, emu, game, kb)
		if err != nil {
			return err
		}
		sch.AddObserver("recorder", rec)
		fmt.Printf("! recording to %s\r\n", fn)
	} else {
		emu.SetController(kb)
	}

	// rewind is not available if the core does not support savestates
	rw, err := rewind.NewRewind(env, emu, sch)
	if err == nil {
		if err := rw.Reset(); err != nil {
			return err
		}
		sch.AddObserver("rewind", rw)
	} else {
		logger.Log(env, "rewind", err.Error())
	}

	// host audio discards the samples for the frame so it must be the last
	// observer to see them
	if aud != nil {
		sch.AddObserver("audio", aud)
	}

	trm, err := terminal.Start(os.Stdin, kb)
	if err != nil {
		if !curated.Is(err, terminal.NotATerminal) {
			return err
		}
		// without a terminal the emulation can still be stopped with ctrl-c
		intChan := make(chan os.Signal, 1)
		signal.Notify(intChan, os.Interrupt)
		defer signal.Stop(intChan)
		go func() {
			<-intChan
			kb.Feed(0x03)
		}()
	} else {
		defer trm.Stop()
	}

	statefile := fmt.Sprintf("%s.state", tools.FilesystemSafeName(game.Name))

	limiter := time.NewTicker(time.Duration(float64(time.Second) / *fps))
	defer limiter.Stop()

	err = sch.RunUntil(func() bool {
		if b, ok := kb.Hotkey(); ok {
			if err := hotkey(b, emu, rw, statefile); err != nil {
				logger.Log(env, "hotkey", err.Error())
			}
		}
		<-limiter.C
		return !kb.Quit() && (*frames <= 0 || emu.Frame() < *frames)
	})

	fmt.Printf("\r\n%d frames (%d lagged)\r\n", emu.Frame(), emu.LagCount())
	return err
}

func hotkey(b byte, emu emulation.Emulator, rw *rewind.Rewind, statefile string) error {
	switch b {
	case hotkeyRewind:
		if rw == nil {
			return nil
		}
		_, err := rw.Back()
		return err

	case hotkeySaveState:
		st, ok := emu.ServiceProvider().State()
		if !ok {
			return nil
		}
		f, err := os.Create(statefile)
		if err != nil {
			return err
		}
		defer f.Close()
		return st.SaveStateBinary(f)

	case hotkeyLoadState:
		st, ok := emu.ServiceProvider().State()
		if !ok {
			return nil
		}
		f, err := os.Open(statefile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := st.LoadStateBinary(f); err != nil {
			return err
		}
		if rw != nil {
			return rw.Reset()
		}
	}
	return nil
}

func playback(md *modalflag.Modes) error {
	md.NewMode()

	cf := addCoreFlags(md)
	recording := md.AddString("recording", "", "recording file to play back")
	wav := md.AddString("wav", "", "record audio to wav file")
	showDigest := md.AddBool("digest", false, "print video digest after playback")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *recording == "" {
		return fmt.Errorf("recording file required for %s mode", md)
	}

	f, err := os.Open(*recording)
	if err != nil {
		return err
	}
	plb, err := recorder.NewPlayback(f)
	f.Close()
	if err != nil {
		return err
	}

	// the recording says which system it was made for
	if strings.ToUpper(*cf.system) == "AUTO" {
		*cf.system = plb.SystemID
	}

	env, emu, game, err := createCore(md, cf)
	if err != nil {
		return err
	}
	defer emu.Dispose()

	if err := plb.AttachToEmulator(emu, game); err != nil {
		return err
	}

	sch := scheduler.NewScheduler(env, emu)
	sch.AddObserver("playback", plb)

	if *wav != "" {
		aw, err := wavwriter.New(env, *wav)
		if err != nil {
			return err
		}
		defer aw.Close()
		sch.AddObserver("wav", aw)
	}

	vid := digest.NewVideo()
	if *showDigest {
		sch.AddObserver("digest", vid)
	}

	err = sch.RunUntil(func() bool {
		return !plb.Finished(emu)
	})
	if err != nil {
		return err
	}

	fmt.Printf("! playback completed: %s\n", plb)
	if *showDigest {
		fmt.Println(vid)
	}

	return nil
}

func digestMode(md *modalflag.Modes) error {
	md.NewMode()

	cf := addCoreFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to run")
	audio := md.AddBool("audio", false, "digest audio rather than video")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, emu, _, err := createCore(md, cf)
	if err != nil {
		return err
	}
	defer emu.Dispose()

	sch := scheduler.NewScheduler(env, emu)

	var dig digest.Digest
	if *audio {
		aud := digest.NewAudio()
		sch.AddObserver("digest", aud)
		dig = aud
	} else {
		vid := digest.NewVideo()
		sch.AddObserver("digest", vid)
		dig = vid
	}

	if err := sch.Run(*frames); err != nil {
		return err
	}

	fmt.Println(dig.Hash())
	return nil
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	cf := addCoreFlags(md)
	frames := md.AddInt("frames", 0, "number of frames to run before dumping")
	output := md.AddString("o", "", "dot file to write (default stdout)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, emu, _, err := createCore(md, cf)
	if err != nil {
		return err
	}
	defer emu.Dispose()

	if err := scheduler.NewScheduler(env, emu).Run(*frames); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	memviz.Map(w, emu)
	return nil
}
