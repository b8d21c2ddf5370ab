/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package flo

import (
    `bufio`
    `fmt`
    `io`
    `math/big`
    `os`
    `strconv`
    `strings`
)

const (
    _MemOpcode = "mem"
)

type _Line struct {
    no   int
    src  string
    dest string
    name string
    op   Opcode
    w    Width
    args []string
}

type _Parser struct {
    defs   map[string]*Node
    undef  map[string]*Node
    consts map[string]*Node
    lines  []_Line
    b      *Builder
}

// Parse reads a graph in the flo text format: one "dest = opcode'width src..."
// statement per line, with "dest = mem'width depth" declaring a memory.
func Parse(r io.Reader) (*Graph, error) {
    p := &_Parser {
        defs   : make(map[string]*Node),
        undef  : make(map[string]*Node),
        consts : make(map[string]*Node),
        b      : NewBuilder(),
    }

    /* Phase 1: split lines and define every destination */
    if err := p.scan(r); err != nil {
        return nil, err
    }

    /* Phase 2: resolve sources and build the operations */
    for _, ln := range p.lines {
        if err := p.operation(ln); err != nil {
            return nil, err
        }
    }

    /* freeze the graph */
    return p.b.Build(), nil
}

// ParseFile is like Parse, but reads from the named file.
func ParseFile(path string) (*Graph, error) {
    fp, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer fp.Close()
    return Parse(fp)
}

func (self *_Parser) scan(r io.Reader) error {
    no := 0
    sc := bufio.NewScanner(r)
    sc.Buffer(nil, 1 << 24)

    /* process every line */
    for sc.Scan() {
        no++
        src := strings.TrimSpace(sc.Text())

        /* skip empty lines and comments */
        if src == "" || src[0] == '#' {
            continue
        }

        /* parse the statement */
        ln, err := splitLine(no, src)
        if err != nil {
            return err
        }

        /* single-assignment check */
        if _, ok := self.defs[ln.dest]; ok {
            return ESyntax(no, src, fmt.Sprintf("redefinition of '%s'", ln.dest))
        }

        /* memories are declarations rather than operations */
        if ln.name == _MemOpcode {
            mem, err := memory(ln)
            if err != nil {
                return err
            }
            self.defs[ln.dest] = mem
            self.b.Declare(mem)
            continue
        }

        /* look up the opcode */
        op, ok := ParseOpcode(ln.name)
        if !ok {
            return ESyntax(no, src, fmt.Sprintf("unknown opcode '%s'", ln.name))
        }

        /* define the destination node */
        ln.op = op
        self.defs[ln.dest] = NewNode(ln.dest, ln.w)
        self.lines = append(self.lines, ln)
    }

    /* check for I/O errors */
    return sc.Err()
}

func (self *_Parser) operation(ln _Line) error {
    sv := make([]*Node, 0, len(ln.args))
    for _, arg := range ln.args {
        if v, err := self.source(ln, arg); err != nil {
            return err
        } else {
            sv = append(sv, v)
        }
    }
    self.b.Add(NewOperation(self.defs[ln.dest], ln.w, ln.op, sv...))
    return nil
}

func (self *_Parser) source(ln _Line, arg string) (*Node, error) {
    if v, ok := self.defs[arg]; ok {
        return v, nil
    }

    /* constant literals */
    if isLiteral(arg) {
        if v, ok := self.consts[arg]; ok {
            return v, nil
        }
        v, err := literal(ln, arg)
        if err != nil {
            return nil, err
        }
        self.consts[arg] = v
        return v, nil
    }

    /* nodes that are never defined keep an unknown width */
    if v, ok := self.undef[arg]; ok {
        return v, nil
    } else {
        v = NewNode(arg, WidthUnknown)
        self.undef[arg] = v
        return v, nil
    }
}

func splitLine(no int, src string) (ln _Line, err error) {
    fv := strings.Fields(src)
    ln.no, ln.src = no, src

    /* "dest = opcode ..." */
    if len(fv) < 3 || fv[1] != "=" {
        return ln, ESyntax(no, src, "expected 'dest = opcode operands...'")
    }

    /* destination can't be a literal */
    if ln.dest = fv[0]; isLiteral(ln.dest) {
        return ln, ESyntax(no, src, fmt.Sprintf("cannot assign to constant '%s'", ln.dest))
    }

    /* opcode with an optional width */
    if ln.name, ln.w, err = splitWidth(fv[2]); err != nil {
        return ln, ESyntax(no, src, err.Error())
    }

    /* the rest are all sources */
    ln.args = fv[3:]
    return ln, nil
}

func splitWidth(tok string) (string, Width, error) {
    i := strings.IndexByte(tok, '\'')
    if i < 0 {
        return tok, WidthUnknown, nil
    }

    /* parse the width */
    name, ws := tok[:i], tok[i + 1:]
    w, err := strconv.ParseUint(ws, 10, 31)
    if err != nil {
        return "", WidthUnknown, fmt.Errorf("invalid width '%s'", ws)
    }

    /* all done */
    return name, Width(w), nil
}

func memory(ln _Line) (*Node, error) {
    if len(ln.args) != 1 {
        return nil, ESyntax(ln.no, ln.src, "memory declaration takes exactly one depth")
    }

    /* parse the depth */
    depth, err := strconv.ParseUint(ln.args[0], 10, 31)
    if err != nil {
        return nil, ESyntax(ln.no, ln.src, fmt.Sprintf("invalid memory depth '%s'", ln.args[0]))
    }

    /* create the memory node */
    return NewMem(ln.dest, ln.w, Width(depth)), nil
}

func isLiteral(tok string) bool {
    if tok == "" {
        return false
    } else if tok[0] == '-' {
        return len(tok) > 1 && tok[1] >= '0' && tok[1] <= '9'
    } else {
        return tok[0] >= '0' && tok[0] <= '9'
    }
}

// literal parses "value" or "value'width". A bare value is given the number
// of bits needed to hold it, so constants never end up with unknown widths.
func literal(ln _Line, tok string) (*Node, error) {
    val, w, err := splitWidth(tok)
    if err != nil {
        return nil, ESyntax(ln.no, ln.src, err.Error())
    }

    /* the value itself */
    v, ok := new(big.Int).SetString(val, 0)
    if !ok {
        return nil, ESyntax(ln.no, ln.src, fmt.Sprintf("invalid constant '%s'", val))
    }

    /* infer the width from the value */
    if !w.Known() {
        if w = Width(v.BitLen()); w == 0 {
            w = 1
        }
    }

    /* use the whole token as the name */
    return NewConst(tok, w), nil
}
